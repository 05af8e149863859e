package crawler

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

// maxRecentPosts caps how many feed items are kept on the profile.
const maxRecentPosts = 50

// pubDateFormats are tried in order against RSS item dates,
// e.g. "Wed, 31 Dec 2025 11:05:39 +0900".
var pubDateFormats = []string{
	time.RFC1123Z,
	time.RFC1123,
}

type rssRoot struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title string   `xml:"title"`
	Image rssImage `xml:"image"`
	Items []rssItem `xml:"item"`
}

type rssImage struct {
	URL string `xml:"url"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// crawlRSS reads the feed: channel title and image, the post list (capped
// at 50, feed order preserved), a total-post fallback, and the count of
// items inside the trailing 30-day window. An item whose date fails to
// parse is skipped from the window count, never an error.
func (p *Pipeline) crawlRSS(ctx context.Context, blogID string, profile *models.BlogProfile) {
	feedURL := fmt.Sprintf("%s/%s", p.endpoints.RSSBaseURL, blogID)

	resp, err := p.fetcher.Get(ctx, feedURL, fetch.DesktopHeaders())
	if err != nil || !resp.OK() {
		slog.Warn("rss fetch failed", "blog_id", blogID, "error", err)
		return
	}

	var root rssRoot
	if err := xml.Unmarshal(resp.Body, &root); err != nil {
		slog.Warn("rss parse failed", "blog_id", blogID, "error", err)
		return
	}

	if title := clean(root.Channel.Title); title != "" {
		profile.BlogName = title
	}
	if img := clean(root.Channel.Image.URL); img != "" {
		profile.ProfileImage = img
	}

	items := root.Channel.Items
	if profile.TotalPosts == 0 {
		profile.TotalPosts = len(items)
	}

	thirtyDaysAgo := p.clock().AddDate(0, 0, -30)
	recent := 0
	for _, item := range items {
		t, ok := parsePubDate(item.PubDate)
		if !ok {
			continue
		}
		if !t.Before(thirtyDaysAgo) {
			recent++
		}
	}
	profile.Recent30DaysPosts = recent

	for i, item := range items {
		if i >= maxRecentPosts {
			break
		}
		post := models.PostSummary{
			Title: clean(item.Title),
			Link:  clean(item.Link),
			Date:  clean(item.PubDate),
		}
		if desc := clean(item.Description); desc != "" {
			post.Description = truncateRunes(stripTags(desc), 100) + "..."
		}
		profile.RecentPosts = append(profile.RecentPosts, post)
	}
}

func parsePubDate(s string) (time.Time, bool) {
	s = clean(s)
	for _, format := range pubDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
