package models

// IndexResult is the blog-level influence index: a weighted composite of
// three sub-scores mapped onto a discrete grade tier.
type IndexResult struct {
	// Grade is the human-facing tier label (저품 → 일반 → 준최7..준최1 → NB → 최적).
	Grade string `json:"grade"`

	// Level is the tier's machine-readable slug.
	Level string `json:"level"`

	// Score is the composite score in [0,100], rounded to 2 decimals.
	Score float64 `json:"score"`

	// Color is the tier's fixed display color.
	Color string `json:"color"`

	// Breakdown holds the three sub-scores before weighting.
	Breakdown IndexBreakdown `json:"breakdown"`

	// Detail echoes the blog-level inputs the calculation used.
	Detail IndexDetail `json:"detail"`

	// VisitorSource names the fallback tier that supplied daily_visitors,
	// e.g. "weekly_avg_7days", "yesterday_50pct", "total_tier".
	VisitorSource string `json:"visitor_source"`

	// DataReliability is "high", "medium" or "low" depending on how many
	// days of visitor history backed the calculation.
	DataReliability string `json:"data_reliability"`

	// ReliabilityMsg is the human message accompanying DataReliability.
	ReliabilityMsg string `json:"reliability_msg"`

	// WeeklyCount echoes the number of history days supplied.
	WeeklyCount int `json:"weekly_count"`
}

// IndexBreakdown holds the sub-scores, each in [0,100].
type IndexBreakdown struct {
	Exposure float64 `json:"exposure"`
	Activity float64 `json:"activity"`
	Trust    float64 `json:"trust"`
}

// IndexDetail echoes the inputs used by the index calculation.
type IndexDetail struct {
	DailyVisitors     int `json:"daily_visitors"`
	TotalVisitors     int `json:"total_visitors"`
	Recent30DaysPosts int `json:"recent_30days_posts"`
	TotalPosts        int `json:"total_posts"`
	Neighbors         int `json:"neighbors"`
}

// Reliability labels for IndexResult.DataReliability.
const (
	ReliabilityHigh   = "high"   // >= 7 days of history
	ReliabilityMedium = "medium" // >= 3 days
	ReliabilityLow    = "low"
)
