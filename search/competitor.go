package search

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

var competitorItemSel = cascadia.MustCompile(".api_txt_lines.total_tit, .title_link")

// Competitors returns the top five blog-vertical results for the keyword,
// flagging entries belonging to myBlogID.
func (c *Checker) Competitors(ctx context.Context, keyword, myBlogID string) ([]models.Competitor, error) {
	searchURL := fmt.Sprintf("%s/search.naver?where=blog&query=%s",
		c.baseURL, url.QueryEscape(keyword))

	resp, err := c.fetcher.Get(ctx, searchURL, fetch.DesktopHeaders())
	if err != nil {
		return nil, fmt.Errorf("competitor search: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("competitor search: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("competitor search parse: %w", err)
	}

	competitors := []models.Competitor{}
	doc.FindMatcher(competitorItemSel).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		link, _ := item.Attr("href")
		m := reURLBlogID.FindStringSubmatch(link)
		if m == nil {
			return true
		}

		title := strings.TrimSpace(item.Text())
		if runes := []rune(title); len(runes) > 50 {
			title = string(runes[:50])
		}

		competitors = append(competitors, models.Competitor{
			Rank:   len(competitors) + 1,
			BlogID: m[1],
			Title:  title,
			Link:   link,
			IsMine: m[1] == myBlogID,
		})
		return len(competitors) < 5
	})

	return competitors, nil
}
