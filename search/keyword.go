// Package search talks to the platform's search surfaces: the blog
// vertical for exposure checks and competitor listings, and the mobile
// autocomplete endpoint for keyword suggestions.
package search

import (
	"regexp"
	"strings"
)

var (
	reBracket = regexp.MustCompile(`\[([^\]]+)\]`)
	rePunct   = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
)

// Korean particles, conjunctions and other filler words dropped when
// deriving a search keyword from a post title.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"의", "가", "이", "은", "는", "을", "를", "에", "와", "과", "도", "로", "으로",
		"에서", "까지", "부터", "만", "보다", "처럼", "같이", "대한", "관한", "위한",
		"그리고", "하지만", "그러나", "또한", "및", "등", "것", "수", "있는", "없는",
		"하는", "되는", "된", "한", "할", "함", "있다", "없다", "하다",
	} {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeyword derives the search keyword from a post title. Bracketed
// prefixes like "[서울맛집]" win verbatim; otherwise punctuation is
// stripped and the first four non-stopword words of length > 1 are joined.
func ExtractKeyword(title string) string {
	if title == "" {
		return ""
	}

	if m := reBracket.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}

	words := strings.Fields(rePunct.ReplaceAllString(title, " "))
	keywords := make([]string, 0, 4)
	for _, w := range words {
		if _, skip := stopwords[w]; skip {
			continue
		}
		if len([]rune(w)) <= 1 {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == 4 {
			break
		}
	}
	return strings.Join(keywords, " ")
}
