package models

import (
	"fmt"
	"strings"
)

// SearchResult is one hit of a full-text search
type SearchResult struct {
	Title   string
	PageID  int64
	Snippet string // plain text, markup stripped
}

// Page is a resolved article
type Page struct {
	PageID       int64
	Title        string
	URL          string
	RedirectFrom string // original title when the request followed a redirect
}

// Summary is the intro extract of a page
type Summary struct {
	Title string
	Text  string
}

// Titles returns the titles of the given results in order
func Titles(results []SearchResult) []string {
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
	}
	return titles
}

// AmbiguousText builds the answer listing at most MaxDisambiguationOptions options
func AmbiguousText(options []string) string {
	if len(options) > MaxDisambiguationOptions {
		options = options[:MaxDisambiguationOptions]
	}
	return fmt.Sprintf("%s%s.", AmbiguousPrefix, strings.Join(options, ", "))
}
