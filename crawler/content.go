package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// contentMetrics is the output of the body-text analysis.
type contentMetrics struct {
	CharCount       int
	WordCount       int
	SubheadingCount int
	LinkCount       int
	HasVideo        bool
}

// minContentLen is the accumulated-text threshold below which the next
// extraction stage is tried.
const minContentLen = 100

// Current-generation rich editor paragraph selectors.
var seOneSelectors = []cascadia.Selector{
	sel(".se-main-container .se-text-paragraph"),
	sel(".se-main-container .se-text"),
	sel(".se-component-content"),
	sel(".se-module-text"),
}

// Legacy editor container selectors.
var legacySelectors = []cascadia.Selector{
	sel(".se-text-paragraph"),
	sel(".se_textarea"),
	sel(".post_ct"),
	sel(".__se_module_data"),
	sel(".se_doc_viewer"),
	sel("#postViewArea"),
	sel(".post-view"),
	sel(".se_component_wrap"),
}

// JSON string values carrying the plain body text, in both double- and
// single-quoted forms.
var contentJSONPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)"contentText"\s*:\s*"((?:[^"\\]|\\.)*)"|'contentText'\s*:\s*'((?:[^'\\]|\\.)*)'`),
	regexp.MustCompile(`(?s)"plainText"\s*:\s*"((?:[^"\\]|\\.)*)"|'plainText'\s*:\s*'((?:[^'\\]|\\.)*)'`),
	regexp.MustCompile(`(?s)"content"\s*:\s*"((?:[^"\\]|\\.)*)"|'content'\s*:\s*'((?:[^'\\]|\\.)*)'`),
}

var contentContainerSel = sel(".post_ct, #content-area, .se_component_wrap, article")

var subheadingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<h[23][^>]*>`),
	regexp.MustCompile(`(?i)class="[^"]*se-section-title[^"]*"`),
	regexp.MustCompile(`(?i)class="[^"]*se-text-paragraph-bold[^"]*"`),
	regexp.MustCompile(`(?i)class="[^"]*se_textarea[^"]*"[^>]*style="[^"]*font-weight:\s*bold`),
	regexp.MustCompile(`(?i)<strong[^>]*class="[^"]*se-[^"]*"`),
}

var httpLinkSel = sel(`a[href*="http"]`)

var videoSelectors = []cascadia.Selector{
	sel(".se-video"),
	sel(".se_mediaArea video"),
	sel(`iframe[src*="youtube"]`),
	sel(`iframe[src*="naver"]`),
	sel(`iframe[src*="vimeo"]`),
	sel(".se-oglink-video"),
	sel("video"),
}

var reVideoHosts = regexp.MustCompile(`(?i)(youtube\.com/embed|player\.vimeo|tv\.naver\.com|video\.naver\.com)`)

var (
	reTagResidue   = regexp.MustCompile(`<[^>]+>`)
	reWhitespace   = regexp.MustCompile(`\s+`)
	reAllSpace     = regexp.MustCompile(`\s`)
	reUnicodeEsc   = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
	escapeReplacer = strings.NewReplacer(`\n`, " ", `\t`, " ", `\r`, "")
)

// analyzeContent extracts the body text through a four-stage fallback —
// current editor selectors, legacy selectors, JSON string values, then
// stripped content containers — stopping once 100 characters accumulate,
// and derives the content metrics from whatever text was found.
func analyzeContent(rawHTML string, doc *goquery.Document) contentMetrics {
	var text strings.Builder

	collect := func(selectors []cascadia.Selector) {
		for _, s := range selectors {
			doc.FindMatcher(s).Each(func(_ int, elem *goquery.Selection) {
				t := clean(elem.Text())
				if len([]rune(t)) > 5 {
					text.WriteString(t)
					text.WriteByte(' ')
				}
			})
		}
	}

	collect(seOneSelectors)

	if len([]rune(clean(text.String()))) < minContentLen {
		collect(legacySelectors)
	}

	content := text.String()
	if len([]rune(clean(content))) < minContentLen {
		if jsonText := contentFromJSON(rawHTML); jsonText != "" {
			content = jsonText
		}
	}

	if len([]rune(clean(content))) < minContentLen {
		doc.FindMatcher(contentContainerSel).Each(func(_ int, container *goquery.Selection) {
			container.Find("script, style, noscript").Remove()
			if t := clean(container.Text()); len([]rune(t)) > len([]rune(content)) {
				content = t
			}
		})
	}

	content = reTagResidue.ReplaceAllString(content, "")
	content = clean(reWhitespace.ReplaceAllString(content, " "))

	charCount := len([]rune(reAllSpace.ReplaceAllString(content, "")))
	if charCount == 0 && len(content) > 0 {
		// Guard against undercounting when the text is all separators.
		charCount = len([]rune(content))
	}

	subheadings := 0
	for _, re := range subheadingPatterns {
		subheadings += len(re.FindAllString(rawHTML, -1))
	}

	hasVideo := false
	for _, s := range videoSelectors {
		if doc.FindMatcher(s).Length() > 0 {
			hasVideo = true
			break
		}
	}
	if !hasVideo {
		hasVideo = reVideoHosts.MatchString(rawHTML)
	}

	return contentMetrics{
		CharCount:       charCount,
		WordCount:       len(strings.Fields(content)),
		SubheadingCount: subheadings,
		LinkCount:       doc.FindMatcher(httpLinkSel).Length(),
		HasVideo:        hasVideo,
	}
}

// contentFromJSON pulls the body text out of inline JSON, handling escaped
// characters and stripping unicode escape sequences.
func contentFromJSON(rawHTML string) string {
	for _, re := range contentJSONPatterns {
		for _, m := range re.FindAllStringSubmatch(rawHTML, -1) {
			t := m[1]
			if t == "" && len(m) > 2 {
				t = m[2]
			}
			if len([]rune(t)) <= minContentLen {
				continue
			}
			t = escapeReplacer.Replace(t)
			t = reUnicodeEsc.ReplaceAllString(t, "")
			return t
		}
	}
	return ""
}

// stripTags removes all markup from a fragment, keeping text content.
func stripTags(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var buf strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return clean(buf.String())
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if tag := string(tn); tag == "script" || tag == "style" {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			if tag := string(tn); tag == "script" || tag == "style" {
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				if text := clean(string(tokenizer.Text())); text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}
