package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/use-agent/blogdex/fetch"
)

// Suggester proxies the mobile autocomplete endpoint.
type Suggester struct {
	fetcher fetch.Fetcher
	baseURL string
}

// NewSuggester creates a Suggester against the given autocomplete host.
func NewSuggester(fetcher fetch.Fetcher, baseURL string) *Suggester {
	return &Suggester{fetcher: fetcher, baseURL: baseURL}
}

// The autocomplete payload nests each suggestion as the first element of a
// small heterogeneous array inside the first item group.
type suggestPayload struct {
	Items [][][]any `json:"items"`
}

// Suggest returns up to 15 deduplicated autocomplete suggestions for the
// keyword, in response order.
func (s *Suggester) Suggest(ctx context.Context, keyword string) ([]string, error) {
	suggestURL := fmt.Sprintf("%s/mobile/ac?st=100&frm=mobile_sug&q=%s",
		s.baseURL, url.QueryEscape(keyword))

	resp, err := s.fetcher.Get(ctx, suggestURL, fetch.MobileHeaders())
	if err != nil {
		return nil, fmt.Errorf("suggest fetch: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("suggest fetch: status %d", resp.StatusCode)
	}

	var payload suggestPayload
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("suggest decode: %w", err)
	}

	suggestions := make([]string, 0, 15)
	seen := make(map[string]struct{})
	if len(payload.Items) > 0 {
		for _, entry := range payload.Items[0] {
			if len(entry) == 0 {
				continue
			}
			kw, ok := entry[0].(string)
			if !ok || kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			suggestions = append(suggestions, kw)
			if len(suggestions) == 15 {
				break
			}
		}
	}
	return suggestions, nil
}
