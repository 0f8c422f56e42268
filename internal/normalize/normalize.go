// Package normalize cleans raw field values coming back from the open-data
// API. The dataset mixes empty strings, literal "NULL" markers, slash dates,
// ISO dates and stringified numbers, so every accessor here is total: bad
// input degrades to a safe default instead of an error.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dateLayouts are tried in order by FormatDate. Go's parser accepts a
// fractional second after the seconds field even when the layout omits it,
// so one datetime layout covers both observed datetime variants.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Clean returns "" for null-like values (nil, empty/whitespace-only, or the
// literal string "NULL" in any case) and the trimmed string otherwise.
// Non-string scalars are formatted and passed through.
func Clean(v any) string {
	if v == nil {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return ""
	}
	return s
}

// Text lowercases s and strips diacritical marks for accent-insensitive
// comparison. Idempotent; "" in, "" out.
func Text(s string) string {
	if s == "" {
		return ""
	}

	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// FormatDate coerces a raw date value to YYYY-MM-DD. Values that match none
// of the known layouts are returned cleaned but otherwise unchanged.
func FormatDate(v any) string {
	s := Clean(v)
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// SafeInt parses a raw value as an integer, tolerating float renderings like
// "3.0". Nil, empty and unparseable values become 0.
func SafeInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case float64:
		return int(n)
	}

	s := Clean(v)
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(f)
}
