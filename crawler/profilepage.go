package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	neighborSel = sel(".neighbor_count, .buddy_count")
	sinceSel    = sel(".since, .blog_since")

	reSinceDate = regexp.MustCompile(`(\d{4})\.(\d{1,2})\.(\d{1,2})`)
)

// crawlProfile reads the profile intro page: a neighbor-count fallback and
// the blog's "since" date, from which the age in days is derived.
func (p *Pipeline) crawlProfile(ctx context.Context, blogID string, profile *models.BlogProfile) {
	pageURL := fmt.Sprintf("%s/profile/intro.naver?blogId=%s",
		p.endpoints.BaseURL, url.QueryEscape(blogID))

	resp, err := p.fetcher.Get(ctx, pageURL, fetch.DesktopHeaders())
	if err != nil || !resp.OK() {
		slog.Warn("profile page fetch failed", "blog_id", blogID, "error", err)
		return
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		slog.Warn("profile page parse failed", "blog_id", blogID, "error", err)
		return
	}

	if profile.Neighbors == 0 {
		if n, ok := firstNumber(doc.FindMatcher(neighborSel).First().Text()); ok {
			profile.Neighbors = n
		}
	}

	if m := reSinceDate.FindStringSubmatch(doc.FindMatcher(sinceSel).First().Text()); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if age := int(p.clock().Sub(start).Hours() / 24); age > 0 {
			profile.BlogAgeDays = age
		}
	}
}
