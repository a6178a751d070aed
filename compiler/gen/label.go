package gen

import (
	"regexp"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	// tagRe matches one markup tag, e.g. "<b>" or "<br/>".
	tagRe = regexp.MustCompile(`<[^<]+?>`)
	// nbsp maps non-breaking spaces to plain spaces.
	nbsp = runes.Map(func(r rune) rune {
		if r == '\u00a0' {
			return ' '
		}
		return r
	})
)

// NormalizeLabel removes markup tags from a raw label, turns non-breaking
// spaces into spaces and trims surrounding whitespace. Internal whitespace
// is kept as is. The result is a fixed point: normalizing it again is a
// no-op.
func NormalizeLabel(raw string) string {
	s := raw
	for {
		next := normalizeStep(s)
		if next == s {
			return s
		}
		s = next
	}
}

// normalizeStep never grows the input, so NormalizeLabel terminates.
func normalizeStep(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&nbsp;", " ")
	if out, _, err := transform.String(nbsp, s); err == nil {
		s = out
	}
	return strings.TrimSpace(s)
}
