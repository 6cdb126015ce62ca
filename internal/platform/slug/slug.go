package slug

import (
	"regexp"
	"strings"
)

const maxLen = 48

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make turns free text into a lowercase, dash-separated file name fragment.
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxLen {
		s = strings.TrimRight(s[:maxLen], "-")
	}
	if s == "" {
		return "meeting"
	}
	return s
}
