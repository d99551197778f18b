// Package sanitize strips dangerous markup from user-submitted text.
// Question text, author names, and answers all pass through here before
// they are stored, so stored content is always safe to echo back.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// richPolicy allows basic formatting in answers: emphasis, lists,
	// links, code, and tables. Scripts, event handlers, and javascript:
	// URLs are removed.
	richPolicy = newRichPolicy()

	// plainPolicy strips all markup. Used for single-line fields like
	// question text, author names, and categories.
	plainPolicy = bluemonday.StrictPolicy()
)

func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowTables()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}

// Rich sanitizes text that may contain formatting markup.
func Rich(s string) string {
	return richPolicy.Sanitize(s)
}

// Plain removes all markup and trims surrounding whitespace.
func Plain(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
