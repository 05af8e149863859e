package scoring

import (
	"strings"

	"github.com/use-agent/blogdex/models"
)

// SeoScore aggregates an SEO report over up to the first 10 enriched
// posts: four sub-scores of 25 points each (title, image, content, search
// exposure), averaged across the sampled posts, plus recommendations for
// every area scoring under 15.
func SeoScore(posts []models.EnrichedPost) models.SeoScore {
	report := models.SeoScore{Recommendations: []string{}}
	if len(posts) == 0 {
		return report
	}

	sample := posts
	if len(sample) > 10 {
		sample = sample[:10]
	}

	var titleSum, imageSum, contentSum float64
	indexed := 0

	for _, post := range sample {
		titleSum += float64(titleSeo(post))
		imageSum += float64(imageSeo(post))
		contentSum += float64(contentSeo(post))
		if post.Exposure == models.ExposureIndexed {
			indexed++
		}
	}

	n := float64(len(sample))
	report.Breakdown = models.SeoBreakdown{
		Title:    round1(titleSum / n),
		Image:    round1(imageSum / n),
		Content:  round1(contentSum / n),
		Exposure: round1(float64(indexed) / n * 25),
	}
	report.Total = round1(report.Breakdown.Title + report.Breakdown.Image +
		report.Breakdown.Content + report.Breakdown.Exposure)

	if report.Breakdown.Title < 15 {
		report.Recommendations = append(report.Recommendations,
			"제목에 키워드를 포함하고 20-45자로 작성하세요")
	}
	if report.Breakdown.Image < 15 {
		report.Recommendations = append(report.Recommendations,
			"이미지 5-15개 사용 및 ALT 태그 설정을 권장합니다")
	}
	if report.Breakdown.Content < 15 {
		report.Recommendations = append(report.Recommendations,
			"본문 2000자 이상, 소제목 2개 이상 사용을 권장합니다")
	}
	if report.Breakdown.Exposure < 15 {
		report.Recommendations = append(report.Recommendations,
			"롱테일 키워드로 검색 노출률을 높이세요")
	}

	return report
}

func titleSeo(post models.EnrichedPost) int {
	score := 0
	switch titleLen := len([]rune(post.Title)); {
	case titleLen >= 20 && titleLen <= 45:
		score += 10
	case titleLen >= 15 && titleLen <= 50:
		score += 5
	}
	if post.Keyword != "" && strings.Contains(post.Title, post.Keyword) {
		score += 15
	}
	return score
}

func imageSeo(post models.EnrichedPost) int {
	score := 0
	switch {
	case post.Images >= 5 && post.Images <= 15:
		score += 15
	case post.Images >= 3 && post.Images < 5:
		score += 10
	case post.Images > 0:
		score += 5
	}
	switch post.ImageSeo.AltQuality {
	case models.AltQualityExcellent:
		score += 10
	case models.AltQualityGood:
		score += 7
	case models.AltQualityAverage:
		score += 4
	}
	return score
}

func contentSeo(post models.EnrichedPost) int {
	score := 0
	switch {
	case post.CharCount >= 2000:
		score += 15
	case post.CharCount >= 1500:
		score += 10
	case post.CharCount >= 1000:
		score += 5
	}
	if post.SubheadingCount >= 2 {
		score += 10
	} else if post.SubheadingCount > 0 {
		score += 5
	}
	return score
}
