package models

// SeoScore is the aggregate SEO report for GET /api/seo-score, computed
// over up to the first 10 enriched posts.
type SeoScore struct {
	// Total is the sum of the four breakdown scores, in [0,100].
	Total float64 `json:"total"`

	// Breakdown holds the four sub-scores, each in [0,25].
	Breakdown SeoBreakdown `json:"breakdown"`

	// Recommendations lists improvement hints triggered by sub-score
	// thresholds.
	Recommendations []string `json:"recommendations"`
}

// SeoBreakdown holds the per-area SEO sub-scores.
type SeoBreakdown struct {
	Title    float64 `json:"title"`
	Image    float64 `json:"image"`
	Content  float64 `json:"content"`
	Exposure float64 `json:"exposure"`
}

// SuggestResponse is the payload for GET /api/suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
	Source      string   `json:"source,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Competitor is one entry in a competitor listing.
type Competitor struct {
	Rank   int    `json:"rank"`
	BlogID string `json:"blog_id"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	IsMine bool   `json:"is_mine"`
}

// CompetitorResponse is the payload for GET /api/competitor.
type CompetitorResponse struct {
	Keyword          string       `json:"keyword"`
	Competitors      []Competitor `json:"competitors"`
	MyRank           *int         `json:"my_rank"`
	TotalCompetitors int          `json:"total_competitors"`
}

// TrendKeyword is one entry in the trending-keyword list.
type TrendKeyword struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
}

// TrendsResponse is the payload for GET /api/trends.
type TrendsResponse struct {
	Trends  []TrendKeyword `json:"trends"`
	Updated string         `json:"updated"`
}
