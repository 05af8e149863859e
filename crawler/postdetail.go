package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	reLogNoPath  = regexp.MustCompile(`/(\d{10,})`)
	reLogNoQuery = regexp.MustCompile(`logNo=(\d+)`)
	reURLBlogID  = regexp.MustCompile(`blog\.naver\.com/([a-zA-Z0-9_-]+)`)
)

// Like counts live in inline JSON under several historical key names;
// the DOM selectors are the fallback for templates that render the count
// server-side. Order is most-specific first.
var likeJSONPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"sympathyCount"\s*:\s*(\d+)`),
	regexp.MustCompile(`sympathyCount["\s:]+(\d+)`),
	regexp.MustCompile(`"likeCount"\s*:\s*(\d+)`),
	regexp.MustCompile(`"sympathy_count"\s*:\s*(\d+)`),
}

var likeSelectors = []cascadia.Selector{
	sel(".u_cnt._count"),
	sel(".sympathy_cnt"),
	sel(".like_cnt"),
	sel(".post_sympathy_count"),
	sel(".u_likeit_list_count"),
	sel(`[class*="sympathy"] [class*="count"]`),
	sel(`[class*="like"] [class*="count"]`),
}

var commentJSONPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"commentCount"\s*:\s*(\d+)`),
	regexp.MustCompile(`commentCount["\s:]+(\d+)`),
	regexp.MustCompile(`"comment_count"\s*:\s*(\d+)`),
	regexp.MustCompile(`"replyCount"\s*:\s*(\d+)`),
}

var commentSelectors = []cascadia.Selector{
	sel(".comment_count"),
	sel(".cmt_cnt"),
	sel(".post_comment_count"),
	sel(`[class*="comment"] [class*="count"]`),
	sel(`[class*="reply"] [class*="count"]`),
}

var imageURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?:[^"\s<>']*pstatic\.net[^"\s<>']*`),
	regexp.MustCompile(`https?:[^"\s<>']*postfiles[^"\s<>']*`),
	regexp.MustCompile(`https?:[^"\s<>']*blogfiles[^"\s<>']*`),
}

// Hash patterns capture a (directory, filename) pair used as the dedup
// key; the same picture appears under several hosts and query strings.
var imageHashPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/([A-Za-z0-9_-]{10,})/([A-Za-z0-9_.-]+)\.(?:jpg|jpeg|png|gif|webp|bmp)`),
	regexp.MustCompile(`(?i)postfiles\d*/([A-Za-z0-9_-]+)/([A-Za-z0-9_.-]+)`),
	regexp.MustCompile(`(?i)blogfiles\d*/([A-Za-z0-9_-]+)/([A-Za-z0-9_.-]+)`),
}

var reImgTagHash = regexp.MustCompile(`/([A-Za-z0-9_-]{10,})/([A-Za-z0-9_.-]+)`)

var (
	urlExcludes = []string{"static/blog", "static.blog", "blogpfthumb", "profile", "icon", "btn_", "bg_"}
	imgExcludes = []string{"blogpfthumb", "profile", "icon", "btn_", "bg_"}
	imageExts   = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}
)

var (
	imgSel     = sel("img")
	seImageSel = sel(".se-image-resource, .se-component-image img, .se_mediaImage")
)

// postDetails fetches a post's mobile detail page and extracts its
// engagement and content metrics. Any failure — malformed link, fetch
// error, bad status, unparseable markup — collapses to the all-zero
// default: this call is all-or-nothing, unlike the page-level extractors.
func (p *Pipeline) postDetails(ctx context.Context, blogID, postURL string) models.PostDetail {
	logNo := extractLogNo(postURL)
	if logNo == "" {
		return models.DefaultDetail()
	}

	// The link may point at a different blog than the one being analyzed
	// (shared or cross-posted content); the URL wins.
	actualID := blogID
	if m := reURLBlogID.FindStringSubmatch(postURL); m != nil {
		actualID = m[1]
	}

	detailURL := fmt.Sprintf("%s/%s/%s", p.endpoints.MobileBaseURL, actualID, logNo)
	resp, err := p.fetcher.Get(ctx, detailURL, fetch.MobileHeaders())
	if err != nil || !resp.OK() {
		slog.Debug("post detail fetch failed", "url", postURL, "error", err)
		return models.DefaultDetail()
	}

	html := string(resp.Body)
	doc, err := parseDocument(resp.Body)
	if err != nil {
		return models.DefaultDetail()
	}

	detail := models.PostDetail{
		Likes:    tieredCount(html, doc, likeJSONPatterns, likeSelectors),
		Comments: tieredCount(html, doc, commentJSONPatterns, commentSelectors),
		Images:   countImages(html, doc),
	}

	content := analyzeContent(html, doc)
	detail.CharCount = content.CharCount
	detail.WordCount = content.WordCount
	detail.SubheadingCount = content.SubheadingCount
	detail.LinkCount = content.LinkCount
	detail.HasVideo = content.HasVideo

	detail.ImageSeo = analyzeImageSeo(doc)

	return detail
}

func extractLogNo(postURL string) string {
	if m := reLogNoPath.FindStringSubmatch(postURL); m != nil {
		return m[1]
	}
	if m := reLogNoQuery.FindStringSubmatch(postURL); m != nil {
		return m[1]
	}
	return ""
}

// tieredCount tries the JSON-key regexes over the raw page first, then
// falls back to DOM selectors; the first numeric match wins.
func tieredCount(html string, doc *goquery.Document, patterns []*regexp.Regexp, selectors []cascadia.Selector) int {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(html); m != nil {
			return atoiCommas(m[1])
		}
	}
	for _, s := range selectors {
		elem := doc.FindMatcher(s).First()
		if elem.Length() == 0 {
			continue
		}
		if n, ok := firstNumber(elem.Text()); ok {
			return n
		}
	}
	return 0
}

// countImages counts unique content images via three tiers: image-host URL
// occurrences in the raw text, then <img> tag attributes, then editor
// image components as a last resort. Tiers one and two share a dedup set
// keyed on a hash/filename path segment so the same picture served from
// several subdomains or with different query strings counts once.
func countImages(html string, doc *goquery.Document) int {
	unique := make(map[string]struct{})

	for _, re := range imageURLPatterns {
		for _, raw := range re.FindAllString(html, -1) {
			cleaned := strings.ReplaceAll(raw, `\/`, "/")
			cleaned = strings.ReplaceAll(cleaned, `\`, "/")
			lower := strings.ToLower(cleaned)

			if containsAny(lower, urlExcludes) {
				continue
			}
			if !containsAny(lower, imageExts) {
				continue
			}

			for _, hashRe := range imageHashPatterns {
				if m := hashRe.FindStringSubmatch(cleaned); m != nil {
					unique[m[1]+"_"+truncateRunes(m[2], 20)] = struct{}{}
					break
				}
			}
		}
	}

	if len(unique) == 0 {
		doc.FindMatcher(imgSel).Each(func(_ int, img *goquery.Selection) {
			src := attrAny(img, "src", "data-lazy-src", "data-src", "data-original")
			if src == "" {
				return
			}
			if containsAny(strings.ToLower(src), imgExcludes) {
				return
			}
			if !strings.Contains(src, "blogfiles") && !strings.Contains(src, "postfiles") &&
				!strings.Contains(src, "pstatic.net") {
				return
			}
			if m := reImgTagHash.FindStringSubmatch(src); m != nil {
				unique[m[1]+"_"+truncateRunes(m[2], 20)] = struct{}{}
			}
		})
	}

	if len(unique) > 0 {
		return len(unique)
	}

	return doc.FindMatcher(seImageSel).Length()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
