// Package sanitizer cleans user-submitted contact form input before it
// is rendered into relay emails.
package sanitizer

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes all HTML from user input, returning plain text.
// Contact form fields are relayed into an email template, so markup,
// scripts and event handlers must never survive.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
