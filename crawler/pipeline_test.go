package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/blogdex/config"
	"github.com/use-agent/blogdex/fetch"
	"github.com/use-agent/blogdex/models"
)

// Fixed analysis time: 2pm, so the yesterday fallback would use the 30%
// scaling if it ever fired.
var testNow = time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

const fixtureBody = "맛있는 파스타를 먹었다 "

var mainPageHTML = `<html><body>
<div class="blog_name">테스터</div>
<p>전체보기 120개의 글</p>
<ul>
<li class="activity_item">이웃 150명</li>
<li class="activity_item">스크랩 30</li>
</ul>
</body></html>`

var rssXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>테스트 블로그</title>
<image><url>https://blogpfthumb.example.com/testblog.png</url></image>
<item>
<title>[강남맛집] 파스타 후기</title>
<link>https://blog.naver.com/testblog/2234567890</link>
<description>&lt;b&gt;크림 파스타&lt;/b&gt; 후기입니다</description>
<pubDate>Wed, 14 Jan 2026 10:00:00 +0900</pubDate>
</item>
<item>
<title>제주 여행 코스 정리</title>
<link>https://blog.naver.com/testblog/2234567891</link>
<description>제주 여행</description>
<pubDate>Mon, 05 Jan 2026 09:30:00 +0900</pubDate>
</item>
<item>
<title>오래된 여름 기록 모음</title>
<link>https://blog.naver.com/testblog/9934567892</link>
<description>지난 여름</description>
<pubDate>Mon, 01 Sep 2025 08:00:00 +0900</pubDate>
</item>
</channel>
</rss>`

var profileHTML = `<html><body>
<span class="buddy_count">9,999명</span>
<span class="blog_since">2019.3.1</span>
</body></html>`

var visitorCounterBody = `{today:'123', yesterday:'456', total:'78901'}`

var mobileMainHTML = `<html><body>
<p>5678명의 이웃</p>
<p>오늘 10 어제 20 전체 30000</p>
<script>var postList = {"totalCount": 200};</script>
</body></html>`

var detailHTML = `<html><body>
<script>var post = {"sympathyCount" : 12, "commentCount": 5};</script>
<div class="se-main-container">
<p class="se-text-paragraph">` + strings.Repeat(fixtureBody, 60) + `</p>
</div>
<h2>소제목 하나</h2>
<h2>소제목 둘</h2>
<img src="https://postfiles.pstatic.net/MFOLDER123A1/pasta1.jpg" alt="파스타 사진"/>
<img src="https://postfiles.pstatic.net/MFOLDER123A2/pasta2.jpg" alt="크림 파스타"/>
<img src="https://postfiles.pstatic.net/MFOLDER123A3/pasta3.jpg"/>
<img src="https://postfiles.pstatic.net/MFOLDER123A1/pasta1.jpg" alt="파스타 사진"/>
<a href="https://maps.example.com/place">지도 보기</a>
</body></html>`

var searchHTML = `<html><body>
<div><a class="title_link" href="https://blog.naver.com/testblog/2234567890">강남맛집 파스타 후기</a></div>
<div><a class="title_link" href="https://blog.naver.com/someoneelse/1111111111">전혀 다른 블로그 글</a></div>
</body></html>`

// newFixturePipeline serves every upstream page from one test server,
// telling the endpoints apart by path prefix.
func newFixturePipeline(t *testing.T) (*Pipeline, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/desktop/PostList.naver", serve(mainPageHTML))
	mux.HandleFunc("/desktop/profile/intro.naver", serve(profileHTML))
	mux.HandleFunc("/desktop/NVisitorgp4Ajax.naver", serve(visitorCounterBody))
	mux.HandleFunc("/rss/testblog", serve(rssXML))
	mux.HandleFunc("/m/testblog", serve(mobileMainHTML))
	mux.HandleFunc("/m/testblog/", serve(detailHTML))
	mux.HandleFunc("/s/search.naver", serve(searchHTML))

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	endpoints := config.EndpointsConfig{
		BaseURL:       ts.URL + "/desktop",
		MobileBaseURL: ts.URL + "/m",
		RSSBaseURL:    ts.URL + "/rss",
		SearchBaseURL: ts.URL + "/s",
	}
	cfg := config.CrawlerConfig{
		MaxEnrichPosts: 30,
		EnrichWorkers:  2,
		SearchDelay:    time.Millisecond,
	}

	return New(fetch.NewClient(5*time.Second), testClock, endpoints, cfg), ts
}

func serve(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}
}

func TestAnalyze_FullProfile(t *testing.T) {
	p, _ := newFixturePipeline(t)

	profile := p.Analyze(context.Background(), "testblog", 0, 0)

	if profile.Error != "" {
		t.Fatalf("unexpected error: %s", profile.Error)
	}
	if profile.BlogNickname != "테스터" {
		t.Errorf("nickname = %q", profile.BlogNickname)
	}
	if profile.BlogName != "테스트 블로그" {
		t.Errorf("blog name = %q", profile.BlogName)
	}
	if profile.ProfileImage != "https://blogpfthumb.example.com/testblog.png" {
		t.Errorf("profile image = %q", profile.ProfileImage)
	}
	// Main page says 120; the mobile JSON totalCount of 200 is larger and
	// wins.
	if profile.TotalPosts != 200 {
		t.Errorf("total posts = %d, want 200", profile.TotalPosts)
	}
	// The main page extracted 150 neighbors first; the profile page's
	// 9,999 and the mobile page's 5678 must not overwrite it.
	if profile.Neighbors != 150 {
		t.Errorf("neighbors = %d, want 150", profile.Neighbors)
	}
	if profile.TotalScraps != 30 {
		t.Errorf("scraps = %d, want 30", profile.TotalScraps)
	}
	// Visitor counter fields, untouched by the mobile page's smaller
	// figures.
	if profile.DailyVisitors != 123 || profile.YesterdayVisitors != 456 || profile.TotalVisitors != 78901 {
		t.Errorf("visitors = %d/%d/%d, want 123/456/78901",
			profile.DailyVisitors, profile.YesterdayVisitors, profile.TotalVisitors)
	}
	if profile.BlogAgeDays < 2400 {
		t.Errorf("blog age = %d days, want since 2019.3.1", profile.BlogAgeDays)
	}
	if profile.Recent30DaysPosts != 2 {
		t.Errorf("recent posts = %d, want 2", profile.Recent30DaysPosts)
	}
	if len(profile.RecentPosts) != 3 {
		t.Fatalf("got %d recent posts, want 3", len(profile.RecentPosts))
	}
	if profile.CrawledAt != testNow.Format(time.RFC3339) {
		t.Errorf("crawled_at = %q", profile.CrawledAt)
	}
}

func TestAnalyze_EnrichedPosts(t *testing.T) {
	p, _ := newFixturePipeline(t)

	profile := p.Analyze(context.Background(), "testblog", 0, 0)

	if len(profile.PostsWithIndex) != 3 {
		t.Fatalf("got %d enriched posts, want 3", len(profile.PostsWithIndex))
	}

	// Feed order survives the concurrent enrichment.
	for i, post := range profile.PostsWithIndex {
		if post.Title != profile.RecentPosts[i].Title {
			t.Errorf("enriched post %d is %q, want %q", i, post.Title, profile.RecentPosts[i].Title)
		}
	}

	first := profile.PostsWithIndex[0]
	if first.Exposure != models.ExposureIndexed {
		t.Errorf("first post exposure = %q, want indexed", first.Exposure)
	}
	if first.Keyword != "강남맛집" {
		t.Errorf("first post keyword = %q, want bracket contents", first.Keyword)
	}
	if first.Likes != 12 || first.Comments != 5 {
		t.Errorf("likes/comments = %d/%d, want 12/5", first.Likes, first.Comments)
	}
	if first.Images != 3 {
		t.Errorf("images = %d, want 3 after dedup", first.Images)
	}
	if first.CharCount != 600 {
		t.Errorf("char count = %d, want 600", first.CharCount)
	}
	if first.SubheadingCount != 2 {
		t.Errorf("subheadings = %d, want 2", first.SubheadingCount)
	}
	if first.LinkCount != 1 {
		t.Errorf("links = %d, want 1", first.LinkCount)
	}
	if first.HasVideo {
		t.Error("has_video = true, want false")
	}
	if first.ImageSeo.TotalImages != 4 || first.ImageSeo.WithAlt != 3 {
		t.Errorf("image seo = %+v", first.ImageSeo)
	}
	if first.ImageSeo.AltQuality != models.AltQualityGood {
		t.Errorf("alt quality = %q, want good (3 of 4)", first.ImageSeo.AltQuality)
	}
	if !first.ImageSeo.HasDescriptiveFilename {
		t.Error("descriptive filename not detected")
	}
	if first.Score <= 0 || first.Score > 100 {
		t.Errorf("score = %d, want in (0,100]", first.Score)
	}

	// The other posts only appear as a bare blog-id on the search page.
	for _, i := range []int{1, 2} {
		if profile.PostsWithIndex[i].Exposure != models.ExposurePending {
			t.Errorf("post %d exposure = %q, want pending", i, profile.PostsWithIndex[i].Exposure)
		}
	}
}

func TestAnalyze_IndexAttached(t *testing.T) {
	p, _ := newFixturePipeline(t)

	profile := p.Analyze(context.Background(), "testblog", 0, 0)

	if profile.Index == nil {
		t.Fatal("index not attached")
	}
	if profile.Index.VisitorSource != "today" {
		t.Errorf("visitor source = %q, want today (counter gave 123)", profile.Index.VisitorSource)
	}
	if profile.Index.Detail.DailyVisitors != 123 {
		t.Errorf("index daily visitors = %d, want 123", profile.Index.Detail.DailyVisitors)
	}
	if profile.Index.Score <= 0 || profile.Index.Score > 100 {
		t.Errorf("index score = %v", profile.Index.Score)
	}
	if profile.Index.Grade == "" || profile.Index.Color == "" {
		t.Errorf("incomplete grade: %+v", profile.Index)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	p, _ := newFixturePipeline(t)

	first := p.Analyze(context.Background(), "testblog", 0, 0)
	second := p.Analyze(context.Background(), "testblog", 0, 0)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over identical fixtures differ:\n%+v\n%+v", first, second)
	}
}

func TestAnalyze_AllFetchesFailing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	endpoints := config.EndpointsConfig{
		BaseURL:       ts.URL,
		MobileBaseURL: ts.URL,
		RSSBaseURL:    ts.URL,
		SearchBaseURL: ts.URL,
	}
	cfg := config.CrawlerConfig{MaxEnrichPosts: 30, EnrichWorkers: 2, SearchDelay: time.Millisecond}
	p := New(fetch.NewClient(2*time.Second), testClock, endpoints, cfg)

	profile := p.Analyze(context.Background(), "testblog", 0, 0)

	// Stage failures are swallowed: no top-level error, default fields, an
	// index still computed from zeros.
	if profile.Error != "" {
		t.Errorf("error = %q, want none for per-stage failures", profile.Error)
	}
	if len(profile.RecentPosts) != 0 || len(profile.PostsWithIndex) != 0 {
		t.Errorf("posts = %d/%d, want 0/0", len(profile.RecentPosts), len(profile.PostsWithIndex))
	}
	if profile.Index == nil {
		t.Fatal("index missing")
	}
	if profile.Index.Level != "low" {
		t.Errorf("level = %q, want low for an empty profile", profile.Index.Level)
	}
}

func TestAnalyze_WeeklyAverageFeedsIndex(t *testing.T) {
	p, _ := newFixturePipeline(t)

	profile := p.Analyze(context.Background(), "testblog", 700, 5)

	if profile.Index == nil {
		t.Fatal("index missing")
	}
	if profile.Index.VisitorSource != "weekly_avg_5days" {
		t.Errorf("visitor source = %q, want weekly_avg_5days", profile.Index.VisitorSource)
	}
	if profile.Index.Detail.DailyVisitors != 700 {
		t.Errorf("daily = %d, want the weekly average", profile.Index.Detail.DailyVisitors)
	}
	// The crawled field itself keeps the counter value.
	if profile.DailyVisitors != 123 {
		t.Errorf("profile daily visitors = %d, want 123", profile.DailyVisitors)
	}
}
