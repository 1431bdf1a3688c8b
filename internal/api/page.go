package api

import (
	"context"
	"net/url"
	"strings"

	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/models"
)

// Page resolves title to an article, following redirects.
// It returns *errors.PageError when no such article exists and
// *errors.DisambiguationError when the title is a disambiguation page.
func (c *WikiClient) Page(ctx context.Context, title string) (*models.Page, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apierrors.NewPageError(title)
	}

	params := url.Values{}
	params.Set("prop", "info|pageprops")
	params.Set("inprop", "url")
	params.Set("ppprop", "disambiguation")
	params.Set("redirects", "1")
	params.Set("titles", title)

	parsed, err := c.query(ctx, "page", params)
	if err != nil {
		return nil, err
	}

	page := parsed.Get(PathFirstPage)
	if !page.Exists() || page.Get(PathPageMissing).Bool() || page.Get(PathPageInvalid).Bool() {
		return nil, apierrors.NewPageError(title)
	}

	resolved := page.Get(PathPageTitle).String()
	if page.Get(PathPageDisambig).Exists() {
		options, err := c.disambiguationOptions(ctx, resolved)
		if err != nil {
			return nil, err
		}
		return nil, apierrors.NewDisambiguationError(resolved, options)
	}

	return &models.Page{
		PageID:       page.Get(PathPageID).Int(),
		Title:        resolved,
		URL:          page.Get(PathPageURL).String(),
		RedirectFrom: parsed.Get(PathRedirectSource).String(),
	}, nil
}

// disambiguationOptions lists the entries of a disambiguation page in the
// order they appear on the page
func (c *WikiClient) disambiguationOptions(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("page", title)
	params.Set("prop", "text")
	params.Set("redirects", "1")
	params.Set("disablelimitreport", "1")
	params.Set("disableeditsection", "1")

	parsed, err := c.call(ctx, "disambiguation", "parse", params)
	if err != nil {
		return nil, err
	}

	text := parsed.Get(PathParseText)
	if !text.Exists() {
		return nil, apierrors.NewParseError("no parse text in response", PathParseText)
	}
	return ListEntries(text.String()), nil
}
