package models

// BlogProfile is the full analysis result for one blog identifier.
// It is built fresh per request; extractors fill fields in stage order and
// only overwrite values still at their zero default.
type BlogProfile struct {
	// BlogID is the analyzed blog identifier, as supplied by the caller.
	BlogID string `json:"blog_id"`

	// BlogName is the RSS channel title. Empty until extracted.
	BlogName string `json:"blog_name,omitempty"`

	// BlogNickname is the display nickname from the desktop post-list page.
	BlogNickname string `json:"blog_nickname,omitempty"`

	// ProfileImage is the profile image URL (RSS channel image, with a
	// mobile-page fallback).
	ProfileImage string `json:"profile_image,omitempty"`

	// Neighbors is the neighbor (buddy) count.
	Neighbors int `json:"neighbors"`

	// TotalPosts is the total post count across all categories.
	TotalPosts int `json:"total_posts"`

	// TotalScraps is the scrap count from the activity panel.
	TotalScraps int `json:"total_scraps"`

	// DailyVisitors is today's visitor count.
	DailyVisitors int `json:"daily_visitors"`

	// YesterdayVisitors is yesterday's visitor count.
	YesterdayVisitors int `json:"yesterday_visitors"`

	// TotalVisitors is the cumulative visitor count.
	TotalVisitors int `json:"total_visitors"`

	// BlogAgeDays is the blog's age in days, derived from the profile
	// page's "since" date. 0 means unknown.
	BlogAgeDays int `json:"blog_age_days"`

	// Recent30DaysPosts counts feed items published within the trailing
	// 30-day window.
	Recent30DaysPosts int `json:"recent_30days_posts"`

	// RecentPosts holds up to 50 feed items in feed order.
	RecentPosts []PostSummary `json:"recent_posts"`

	// PostsWithIndex holds the enriched subset of RecentPosts, in the
	// original feed order.
	PostsWithIndex []EnrichedPost `json:"posts_with_index"`

	// Index is the computed influence index. Attached after every other
	// field has reached its final value.
	Index *IndexResult `json:"index,omitempty"`

	// CrawledAt is the analysis timestamp in RFC 3339.
	CrawledAt string `json:"crawled_at"`

	// Error is set only on an unrecoverable top-level failure. Partial
	// extraction misses leave fields at their defaults instead.
	Error string `json:"error,omitempty"`
}

// PostSummary is one feed item.
type PostSummary struct {
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`

	// Date is the raw pubDate string from the feed.
	Date string `json:"date,omitempty"`

	// Description is the feed description, tags stripped, truncated to
	// 100 characters plus an ellipsis.
	Description string `json:"description,omitempty"`
}

// Exposure states for a post in the platform's blog-vertical search.
const (
	ExposureIndexed = "indexed" // the exact post appears in results
	ExposurePending = "pending" // the blog appears, the exact post is unconfirmed
	ExposureMissing = "missing" // the blog does not appear at all
	ExposureUnknown = "unknown" // check skipped or failed
)

// PostDetail is the enrichment field set produced by the post detail
// fetcher. Identity fields stay on the PostSummary.
type PostDetail struct {
	Likes           int            `json:"likes"`
	Comments        int            `json:"comments"`
	Images          int            `json:"images"`
	CharCount       int            `json:"char_count"`
	WordCount       int            `json:"word_count"`
	SubheadingCount int            `json:"subheading_count"`
	LinkCount       int            `json:"link_count"`
	HasVideo        bool           `json:"has_video"`
	ImageSeo        ImageSeoReport `json:"image_seo"`
}

// EnrichedPost is a PostSummary merged with its enrichment fields and
// exposure classification.
type EnrichedPost struct {
	PostSummary
	PostDetail

	// Exposure is the search-exposure state for the derived keyword.
	Exposure string `json:"exposure"`

	// Keyword is the search keyword derived from the post title.
	Keyword string `json:"keyword"`

	// Score is the per-post optimization score in [0,100].
	Score int `json:"score"`
}

// DefaultDetail returns the enrichment field set used when a post detail
// fetch fails or is skipped: zero counts and an unknown alt quality.
func DefaultDetail() PostDetail {
	return PostDetail{ImageSeo: ImageSeoReport{
		AltQuality:      AltQualityUnknown,
		Recommendations: []string{},
	}}
}

// DefaultEnriched merges the default enrichment onto a summary.
func DefaultEnriched(summary PostSummary) EnrichedPost {
	return EnrichedPost{
		PostSummary: summary,
		PostDetail:  DefaultDetail(),
		Exposure:    ExposureUnknown,
		Keyword:     "",
	}
}

// Alt-quality tiers for ImageSeoReport, from the with_alt/total ratio.
const (
	AltQualityNoImages  = "no_images"
	AltQualityExcellent = "excellent" // every content image has alt text
	AltQualityGood      = "good"      // >= 70%
	AltQualityAverage   = "average"   // >= 30%
	AltQualityPoor      = "poor"
	AltQualityUnknown   = "unknown"
)

// ImageSeoReport describes alt-text and filename hygiene for a post's
// content images.
type ImageSeoReport struct {
	TotalImages            int      `json:"total_images"`
	WithAlt                int      `json:"with_alt"`
	WithoutAlt             int      `json:"without_alt"`
	AltQuality             string   `json:"alt_quality"`
	HasDescriptiveFilename bool     `json:"has_descriptive_filename"`
	Recommendations        []string `json:"recommendations"`
}

// AnalyzeResponse is the payload for GET /api/analyze: the profile plus
// request echo fields.
type AnalyzeResponse struct {
	BlogProfile

	// Platform names the source platform.
	Platform string `json:"platform"`

	// WeeklyAvgUsed echoes the caller-supplied weekly average, but only
	// when at least 2 days backed it.
	WeeklyAvgUsed int `json:"weekly_avg_used"`

	// WeeklyCount echoes the number of days behind WeeklyAvgUsed.
	WeeklyCount int `json:"weekly_count"`
}
