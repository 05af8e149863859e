package models

// HistoryEntry is one record in the per-blog analysis history log.
type HistoryEntry struct {
	BlogID     string  `json:"blog_id"`
	Grade      string  `json:"grade"`
	Level      string  `json:"level"`
	Score      float64 `json:"score"`
	AnalyzedAt string  `json:"analyzed_at"`
}

// HistoryResponse is the payload for GET /api/history.
type HistoryResponse struct {
	BlogID  string         `json:"blog_id"`
	Entries []HistoryEntry `json:"entries"`

	// Enabled is false when no history store is configured.
	Enabled bool `json:"enabled"`
}
