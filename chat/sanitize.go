package chat

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripMarkup = bluemonday.StrictPolicy()

// Sanitize strips all markup from s and trims surrounding whitespace. Every
// free-text field of every inbound payload goes through here before it is
// validated or stored.
func Sanitize(s string) string {
	return strings.TrimSpace(stripMarkup.Sanitize(s))
}
