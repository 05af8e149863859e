package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	nicknameSel = sel(".nick, .blog_name, #nickNameArea")
	activitySel = sel(".activity_item, .blog_info li")

	rePostCount = regexp.MustCompile(`(\d+)개의\s*글`)
)

// crawlMainPage reads the desktop post-list page: display nickname, the
// "N개의 글" total-post pattern, and the activity panel's neighbor and
// scrap counts.
func (p *Pipeline) crawlMainPage(ctx context.Context, blogID string, profile *models.BlogProfile) {
	pageURL := fmt.Sprintf("%s/PostList.naver?blogId=%s&from=postList&categoryNo=0",
		p.endpoints.BaseURL, url.QueryEscape(blogID))

	resp, err := p.fetcher.Get(ctx, pageURL, fetch.DesktopHeaders())
	if err != nil || !resp.OK() {
		slog.Warn("main page fetch failed", "blog_id", blogID, "error", err)
		return
	}

	html := string(resp.Body)
	doc, err := parseDocument(resp.Body)
	if err != nil {
		slog.Warn("main page parse failed", "blog_id", blogID, "error", err)
		return
	}

	if nick := strings.TrimSpace(doc.FindMatcher(nicknameSel).First().Text()); nick != "" {
		profile.BlogNickname = nick
	}

	if m := rePostCount.FindStringSubmatch(html); m != nil {
		profile.TotalPosts = atoiCommas(m[1])
	}

	doc.FindMatcher(activitySel).Each(func(_ int, item *goquery.Selection) {
		text := item.Text()
		if strings.Contains(text, "이웃") {
			if n, ok := firstNumber(text); ok {
				profile.Neighbors = n
			}
		}
		if strings.Contains(text, "스크랩") {
			if n, ok := firstNumber(text); ok {
				profile.TotalScraps = n
			}
		}
	})
}
