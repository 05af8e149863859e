package search

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	reURLBlogID  = regexp.MustCompile(`blog\.naver\.com/([a-zA-Z0-9_-]+)`)
	reLogNoPath  = regexp.MustCompile(`/(\d{10,})`)
	reLogNoQuery = regexp.MustCompile(`logNo=(\d+)`)
	reTitleToken = regexp.MustCompile(`[가-힣a-zA-Z0-9]{2,}`)

	resultItemSel = cascadia.MustCompile(".api_txt_lines, .title_link, .total_tit, .sh_blog_title")
	blogLinkSel   = cascadia.MustCompile(`a[href*="blog.naver.com"]`)
)

// Checker classifies a post's exposure in the blog-vertical search.
type Checker struct {
	fetcher fetch.Fetcher
	baseURL string
}

// NewChecker creates a Checker against the given search host.
func NewChecker(fetcher fetch.Fetcher, baseURL string) *Checker {
	return &Checker{fetcher: fetcher, baseURL: baseURL}
}

// Check searches the blog vertical for the keyword derived from title and
// classifies the result through four tiers: an exact blog-id/logNo match in
// the raw page, a result link carrying both identifiers, a result title
// sharing at least half the post title's tokens next to the blog id, and
// finally a bare blog-id occurrence, which is only "pending" since it may
// be a different post. No tier firing means "missing"; a failed fetch or an
// empty keyword means "unknown".
func (c *Checker) Check(ctx context.Context, blogID, title, postURL string) (string, string) {
	// The link's blog id wins over the analyzed one for cross-posted
	// content, same as the detail fetcher.
	actualID := blogID
	if m := reURLBlogID.FindStringSubmatch(postURL); m != nil {
		actualID = m[1]
	}

	logNo := ""
	if m := reLogNoPath.FindStringSubmatch(postURL); m != nil {
		logNo = m[1]
	} else if m := reLogNoQuery.FindStringSubmatch(postURL); m != nil {
		logNo = m[1]
	}

	keyword := ExtractKeyword(title)
	if keyword == "" {
		return models.ExposureUnknown, ""
	}

	searchURL := fmt.Sprintf("%s/search.naver?where=blog&query=%s",
		c.baseURL, url.QueryEscape(keyword))
	resp, err := c.fetcher.Get(ctx, searchURL, fetch.DesktopHeaders())
	if err != nil || !resp.OK() {
		slog.Debug("exposure search fetch failed", "keyword", keyword, "error", err)
		return models.ExposureUnknown, keyword
	}

	html := string(resp.Body)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return models.ExposureUnknown, keyword
	}

	// The first two tiers need a logNo: without one the patterns would
	// degenerate to a bare blog-id match and misreport "indexed".
	if logNo != "" {
		exactPatterns := []string{
			regexp.QuoteMeta(actualID) + "/" + regexp.QuoteMeta(logNo),
			"blogId=" + regexp.QuoteMeta(actualID) + ".*logNo=" + regexp.QuoteMeta(logNo),
			regexp.QuoteMeta(actualID) + ".*" + regexp.QuoteMeta(logNo),
		}
		for _, p := range exactPatterns {
			if regexp.MustCompile("(?is)" + p).MatchString(html) {
				return models.ExposureIndexed, keyword
			}
		}

		indexed := false
		doc.FindMatcher(blogLinkSel).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			href, _ := link.Attr("href")
			if strings.Contains(href, actualID) && strings.Contains(href, logNo) {
				indexed = true
				return false
			}
			return true
		})
		if indexed {
			return models.ExposureIndexed, keyword
		}
	}

	if titleTokensMatch(doc, actualID, title) {
		return models.ExposureIndexed, keyword
	}

	if strings.Contains(html, actualID) {
		return models.ExposurePending, keyword
	}
	return models.ExposureMissing, keyword
}

// titleTokensMatch reports whether a search-result item adjacent to the
// blog id shares at least half of the post title's tokens, which separates
// the post itself from other posts of the same blog.
func titleTokensMatch(doc *goquery.Document, actualID, title string) bool {
	titleTokens := tokenSet(title)
	if len(titleTokens) == 0 {
		return false
	}

	matched := false
	doc.FindMatcher(resultItemSel).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		parentHTML, err := goquery.OuterHtml(item.Parent())
		if err != nil || !strings.Contains(parentHTML, actualID) {
			return true
		}

		itemTokens := tokenSet(item.Text())
		overlap := 0
		for t := range titleTokens {
			if _, ok := itemTokens[t]; ok {
				overlap++
			}
		}
		if float64(overlap)/float64(len(titleTokens)) >= 0.5 {
			matched = true
			return false
		}
		return true
	})
	return matched
}

func tokenSet(s string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, t := range reTitleToken.FindAllString(s, -1) {
		tokens[t] = struct{}{}
	}
	return tokens
}
