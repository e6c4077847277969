package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"listing_portal/internal/domain"
)

// FormatPrice renders a price with a leading dollar sign and exactly two
// decimals, without grouping: 1234.5 -> "$1234.50".
func FormatPrice(p float64) string { return fmt.Sprintf("$%.2f", p) }

func FormatStatus(forSale bool) string {
	if forSale {
		return "For Sale"
	}
	return "For Rent"
}

// JoinTokens turns enumerated tokens into display text: underscores become
// spaces in each token, then tokens are joined with ", ".
func JoinTokens(tokens []string) string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = strings.ReplaceAll(t, "_", " ")
	}
	return strings.Join(out, ", ")
}

func money(v float64) string { return "$" + domain.FormatNumber(v) }

/********** locale-aware short dates **********/

// dateLayouts is indexed in step with dateTags; entry 0 is the fallback.
var (
	dateTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.German,
		language.French,
		language.Spanish,
		language.Italian,
		language.Dutch,
		language.BrazilianPortuguese,
		language.Japanese,
		language.Chinese,
		language.Korean,
	}
	dateLayouts = []string{
		"1/2/2006",
		"02/01/2006",
		"2.1.2006",
		"02/01/2006",
		"2/1/2006",
		"2/1/2006",
		"2-1-2006",
		"02/01/2006",
		"2006/1/2",
		"2006/1/2",
		"2006. 1. 2.",
	}
	dateMatcher = language.NewMatcher(dateTags)
)

// normalizeLocale accepts POSIX forms such as "en_GB.UTF-8".
func normalizeLocale(loc string) string {
	if i := strings.IndexAny(loc, ".@"); i >= 0 {
		loc = loc[:i]
	}
	return strings.ReplaceAll(strings.TrimSpace(loc), "_", "-")
}

// DateLayout returns the short-date layout for a viewer locale.
func DateLayout(locale string) string {
	tag, err := language.Parse(normalizeLocale(locale))
	if err != nil {
		return dateLayouts[0]
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return dateLayouts[0]
	}
	return dateLayouts[idx]
}

// FormatDate renders t in the viewer's short date form. A zero time renders
// as "Invalid Date".
func FormatDate(t time.Time, locale string) string {
	if t.IsZero() {
		return "Invalid Date"
	}
	return t.Format(DateLayout(locale))
}

// ParseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
