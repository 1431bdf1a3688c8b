// Package api provides the MediaWiki Action API client.
package api

// GJSON paths for extracting values from MediaWiki responses.
// All requests use formatversion=2, so pages come back as an array.
const (
	PathError     = "error"
	PathErrorCode = "error.code"
	PathErrorInfo = "error.info"

	PathSearch        = "query.search"
	PathSearchTitle   = "title"
	PathSearchPageID  = "pageid"
	PathSearchSnippet = "snippet"

	PathFirstPage      = "query.pages.0"
	PathPageMissing    = "missing"
	PathPageInvalid    = "invalid"
	PathPageTitle      = "title"
	PathPageID         = "pageid"
	PathPageURL        = "fullurl"
	PathPageDisambig   = "pageprops.disambiguation"
	PathPageExtract    = "extract"
	PathRedirectSource = "query.redirects.0.from"

	PathParseText = "parse.text"
)
