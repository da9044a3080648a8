package utils

import "github.com/microcosm-cc/bluemonday"

// A single UGC policy covers both surfaces that carry untrusted markup:
// visitor comment bodies and markdown-rendered post HTML.
var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips scripts and event handlers from comment bodies before they
// are stored and from rendered post bodies before they reach the feed.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
