// Package lookup turns a chat query into exactly one display string and
// runs those lookups off the UI loop.
package lookup

import (
	"context"
	"errors"
	"strings"

	"github.com/diogo/wikichat/internal/api"
	apierrors "github.com/diogo/wikichat/internal/errors"
	"github.com/diogo/wikichat/internal/models"
)

// Answer searches for query, resolves the top hit and returns its summary.
// Every outcome is a display string; err carries the underlying cause for
// logging and is nil only when a summary was found.
func Answer(ctx context.Context, client api.WikiClientInterface, query string, sentences int) (string, error) {
	query = strings.TrimSpace(query)

	results, err := client.Search(ctx, query)
	if err != nil {
		return Describe(err), err
	}
	if len(results) == 0 {
		return models.NotFoundText, apierrors.ErrNoResults
	}

	top := results[0].Title

	page, err := client.Page(ctx, top)
	if err != nil {
		return Describe(err), err
	}

	title := top
	if page != nil && page.Title != "" {
		title = page.Title
	}

	summary, err := client.Summary(ctx, title, sentences)
	if err != nil {
		return Describe(err), err
	}

	return summary, nil
}

// Describe maps a lookup failure to the text shown in the chat
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case apierrors.IsDisambiguationError(err):
		de, _ := apierrors.AsDisambiguation(err)
		if de == nil || len(de.Options) == 0 {
			return models.PageMissingText
		}
		return models.AmbiguousText(de.Options)
	case apierrors.IsPageError(err):
		return models.PageMissingText
	case errors.Is(err, apierrors.ErrNoResults):
		return models.NotFoundText
	default:
		// connectivity, HTTP status, timeouts, malformed responses
		return models.NoInternetText
	}
}
