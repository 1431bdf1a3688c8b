package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/diogo/wikichat/internal/models"
)

// Search runs a full-text search and returns the hits in relevance order.
// An empty slice (not an error) means nothing matched.
func (c *WikiClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(models.SearchLimit))
	params.Set("srprop", "snippet")

	parsed, err := c.query(ctx, "search", params)
	if err != nil {
		return nil, err
	}

	return parseSearch(parsed), nil
}

func parseSearch(parsed gjson.Result) []models.SearchResult {
	results := []models.SearchResult{}
	parsed.Get(PathSearch).ForEach(func(_, hit gjson.Result) bool {
		title := hit.Get(PathSearchTitle).String()
		if title == "" {
			return true
		}
		results = append(results, models.SearchResult{
			Title:   title,
			PageID:  hit.Get(PathSearchPageID).Int(),
			Snippet: StripMarkup(hit.Get(PathSearchSnippet).String()),
		})
		return true
	})
	return results
}
