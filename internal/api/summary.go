package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/models"
)

// Summary returns the first sentences of the article's introduction as plain text
func (c *WikiClient) Summary(ctx context.Context, title string, sentences int) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apierrors.NewPageError(title)
	}
	if sentences <= 0 {
		sentences = models.DefaultSentences
	}

	params := url.Values{}
	params.Set("prop", "extracts")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsentences", strconv.Itoa(sentences))
	params.Set("redirects", "1")
	params.Set("titles", title)

	parsed, err := c.query(ctx, "summary", params)
	if err != nil {
		return "", err
	}

	page := parsed.Get(PathFirstPage)
	if !page.Exists() || page.Get(PathPageMissing).Bool() || page.Get(PathPageInvalid).Bool() {
		return "", apierrors.NewPageError(title)
	}

	extract := strings.TrimSpace(page.Get(PathPageExtract).String())
	if extract == "" {
		return "", apierrors.NewPageError(title)
	}

	return extract, nil
}
