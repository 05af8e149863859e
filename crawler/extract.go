package crawler

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Selector chains are compiled once as package data; each extractor walks
// its chain in priority order and the first match wins.
func sel(s string) cascadia.Selector {
	return cascadia.MustCompile(s)
}

var reDigits = regexp.MustCompile(`\d+`)

// firstNumber returns the first digit run in text with thousands
// separators stripped, e.g. "이웃 1,234명" → 1234.
func firstNumber(text string) (int, bool) {
	m := reDigits.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// clean trims surrounding whitespace.
func clean(s string) string {
	return strings.TrimSpace(s)
}

// atoiCommas parses a digit string that may contain thousands separators.
func atoiCommas(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}

// parseDocument wraps goquery document construction from a fetched body.
func parseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// attrAny returns the first non-empty attribute among names.
func attrAny(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v, ok := s.Attr(name); ok && v != "" {
			return v
		}
	}
	return ""
}
