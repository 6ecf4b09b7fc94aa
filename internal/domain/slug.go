package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStripper   = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	slugDisallowed = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashRuns   = regexp.MustCompile(`-{2,}`)
)

// SlugPattern is the constraint every generated slug satisfies.
const SlugPattern = `^[a-z0-9-]+$`

// NormalizeNameToken lowercases a display name, strips diacritics (including
// the Vietnamese đ, which is not a combining mark) and collapses whitespace
// into single dashes, yielding a URL-safe token.
func NormalizeNameToken(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	lowered = strings.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		}
		return r
	}, lowered)
	stripped, _, err := transform.String(slugStripper, lowered)
	if err != nil {
		stripped = lowered
	}
	token := strings.Join(strings.Fields(stripped), "-")
	token = slugDisallowed.ReplaceAllString(token, "")
	token = slugDashRuns.ReplaceAllString(token, "-")
	return strings.Trim(token, "-")
}

// GenerateSlug derives the public site identifier from both names plus a
// date component. When the couple has not picked a wedding date yet the
// component falls back to the moment of creation, so the slug is
// time-of-creation-dependent unless the caller threads the date through.
func GenerateSlug(groomName, brideName string, date *time.Time, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	when := now().UTC()
	if date != nil && !date.IsZero() {
		when = date.UTC()
	}

	parts := make([]string, 0, 3)
	if tok := NormalizeNameToken(groomName); tok != "" {
		parts = append(parts, tok)
	}
	if tok := NormalizeNameToken(brideName); tok != "" {
		parts = append(parts, tok)
	}
	parts = append(parts, when.Format("02012006"))
	return strings.Join(parts, "-")
}
