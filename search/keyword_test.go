package search

import "testing"

func TestExtractKeyword_BracketWins(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"[서울맛집] 강남 파스타 후기", "서울맛집"},
		{"[ 공백 포함 ] 나머지 제목", "공백 포함"},
		{"앞말 [브라켓] 뒷말", "브라켓"},
	}

	for _, tt := range tests {
		if got := ExtractKeyword(tt.title); got != tt.want {
			t.Errorf("ExtractKeyword(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestExtractKeyword_StopwordsAndShortTokensDropped(t *testing.T) {
	// "그리고" and "등" are stopwords; single-rune tokens are dropped.
	got := ExtractKeyword("그리고 강남 맛집 등 추천 후기")

	if got != "강남 맛집 추천 후기" {
		t.Errorf("got %q, want %q", got, "강남 맛집 추천 후기")
	}
}

func TestExtractKeyword_CapsAtFourWords(t *testing.T) {
	got := ExtractKeyword("하나둘 셋넷 다섯 여섯 일곱 여덟")

	if got != "하나둘 셋넷 다섯 여섯" {
		t.Errorf("got %q, want first four words", got)
	}
}

func TestExtractKeyword_PunctuationStripped(t *testing.T) {
	got := ExtractKeyword("강남역!!! 파스타, 최고~ (내돈내산)")

	if got != "강남역 파스타 최고 내돈내산" {
		t.Errorf("got %q", got)
	}
}

func TestExtractKeyword_Empty(t *testing.T) {
	if got := ExtractKeyword(""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	// Only stopwords and single-rune words leaves nothing.
	if got := ExtractKeyword("이 그 저 것"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
