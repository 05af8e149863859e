package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	reCounterToday     = regexp.MustCompile(`today["']?\s*:\s*["']?(\d+)`)
	reCounterYesterday = regexp.MustCompile(`(?i)(?:yesterday|yester)["']?\s*:\s*["']?(\d+)`)
	reCounterTotal     = regexp.MustCompile(`total["']?\s*:\s*["']?(\d+)`)

	// "어제 방문자: 1,234" and looser variants on the prologue listing.
	rePrologueYesterday = regexp.MustCompile(`어제\s*(?:방문자?)?\s*[:：]?\s*(\d[\d,]*)`)
)

// crawlVisitorStats reads the visitor-counter widget endpoint, with the
// prologue listing page as a last-resort source for the yesterday figure.
// The widget is only populated when the blog owner made it public.
func (p *Pipeline) crawlVisitorStats(ctx context.Context, blogID string, profile *models.BlogProfile) {
	counterURL := fmt.Sprintf("%s/NVisitorgp4Ajax.naver?blogId=%s",
		p.endpoints.BaseURL, url.QueryEscape(blogID))

	resp, err := p.fetcher.Get(ctx, counterURL, fetch.DesktopHeaders())
	if err != nil {
		slog.Warn("visitor counter fetch failed", "blog_id", blogID, "error", err)
	} else if resp.OK() {
		body := string(resp.Body)
		if m := reCounterToday.FindStringSubmatch(body); m != nil {
			profile.DailyVisitors = atoiCommas(m[1])
		}
		if m := reCounterYesterday.FindStringSubmatch(body); m != nil {
			profile.YesterdayVisitors = atoiCommas(m[1])
		}
		if m := reCounterTotal.FindStringSubmatch(body); m != nil {
			profile.TotalVisitors = atoiCommas(m[1])
		}
	}

	if profile.YesterdayVisitors == 0 {
		prologueURL := fmt.Sprintf("%s/prologue/PrologueList.naver?blogId=%s",
			p.endpoints.BaseURL, url.QueryEscape(blogID))
		resp, err := p.fetcher.Get(ctx, prologueURL, fetch.DesktopHeaders())
		if err != nil || !resp.OK() {
			return
		}
		if m := rePrologueYesterday.FindStringSubmatch(string(resp.Body)); m != nil {
			profile.YesterdayVisitors = atoiCommas(m[1])
		}
	}
}
