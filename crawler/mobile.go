package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var (
	reProfileImageJSON = regexp.MustCompile(`"profileImageUrl"\s*:\s*"([^"]+)"`)
	reProfileImageURL  = regexp.MustCompile(`(?i)(https://[^"']*(?:blogpfp|profile)[^"']*\.(?:jpg|png|gif))`)

	reMobileBuddies = regexp.MustCompile(`(\d+)명의\s*이웃`)

	// "오늘 X 어제 Y 전체 Z"; the yesterday segment is not always present.
	reVisitorsFull  = regexp.MustCompile(`(?s)오늘\s*(\d+).*?어제\s*(\d+).*?전체\s*([\d,]+)`)
	reVisitorsShort = regexp.MustCompile(`(?s)오늘\s*(\d+).*?전체\s*([\d,]+)`)
	reYesterdayOnly = regexp.MustCompile(`어제\s*(\d[\d,]*)`)

	reTotalCountJSON = regexp.MustCompile(`"totalCount"\s*:\s*(\d+)`)
)

// crawlMobilePage reads the mobile main page last in the stage order: it
// only fills gaps the earlier stages left (profile image, neighbors,
// visitor figures), except that the JSON totalCount may overwrite a
// smaller post count since it is the more authoritative source.
func (p *Pipeline) crawlMobilePage(ctx context.Context, blogID string, profile *models.BlogProfile) {
	pageURL := fmt.Sprintf("%s/%s", p.endpoints.MobileBaseURL, blogID)

	resp, err := p.fetcher.Get(ctx, pageURL, fetch.MobileHeaders())
	if err != nil || !resp.OK() {
		slog.Warn("mobile page fetch failed", "blog_id", blogID, "error", err)
		return
	}
	html := string(resp.Body)

	if profile.ProfileImage == "" {
		if m := reProfileImageJSON.FindStringSubmatch(html); m != nil {
			profile.ProfileImage = strings.ReplaceAll(m[1], `\/`, "/")
		}
	}
	if profile.ProfileImage == "" {
		if m := reProfileImageURL.FindStringSubmatch(html); m != nil {
			profile.ProfileImage = m[1]
		}
	}

	if profile.Neighbors == 0 {
		if m := reMobileBuddies.FindStringSubmatch(html); m != nil {
			profile.Neighbors = atoiCommas(m[1])
		}
	}

	if m := reVisitorsFull.FindStringSubmatch(html); m != nil {
		if profile.DailyVisitors == 0 {
			profile.DailyVisitors = atoiCommas(m[1])
		}
		if profile.YesterdayVisitors == 0 {
			profile.YesterdayVisitors = atoiCommas(m[2])
		}
		if profile.TotalVisitors == 0 {
			profile.TotalVisitors = atoiCommas(m[3])
		}
	} else if m := reVisitorsShort.FindStringSubmatch(html); m != nil {
		if profile.DailyVisitors == 0 {
			profile.DailyVisitors = atoiCommas(m[1])
		}
		if profile.TotalVisitors == 0 {
			profile.TotalVisitors = atoiCommas(m[2])
		}
	}

	if profile.YesterdayVisitors == 0 {
		if m := reYesterdayOnly.FindStringSubmatch(html); m != nil {
			profile.YesterdayVisitors = atoiCommas(m[1])
		}
	}

	if m := reTotalCountJSON.FindStringSubmatch(html); m != nil {
		if total := atoiCommas(m[1]); total > profile.TotalPosts {
			profile.TotalPosts = total
		}
	}
}
