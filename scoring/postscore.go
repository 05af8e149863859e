package scoring

import "github.com/use-agent/blogdex/models"

// PostScore rates one enriched post on an additive 0-100 rubric over title
// length, media, body length, structure, search exposure and engagement,
// starting from a base of 40.
func PostScore(post models.EnrichedPost) int {
	score := 40

	switch titleLen := len([]rune(post.Title)); {
	case titleLen >= 20 && titleLen <= 40:
		score += 15
	case titleLen >= 15 && titleLen <= 50:
		score += 8
	case titleLen < 15:
		score -= 5
	}

	switch {
	case post.Images >= 3 && post.Images <= 10:
		score += 15
	case post.Images >= 1 && post.Images <= 2:
		score += 8
	case post.Images > 10:
		score += 12
	default:
		score -= 10
	}

	switch {
	case post.CharCount >= 2000:
		score += 15
	case post.CharCount >= 1500:
		score += 12
	case post.CharCount >= 1000:
		score += 8
	case post.CharCount >= 500:
		score += 4
	default:
		score -= 5
	}

	if post.SubheadingCount >= 2 && post.SubheadingCount <= 5 {
		score += 5
	} else if post.SubheadingCount >= 1 {
		score += 2
	}

	switch post.Exposure {
	case models.ExposureIndexed:
		score += 20
	case models.ExposurePending:
		score += 8
	}

	switch engagement := post.Likes + post.Comments; {
	case engagement >= 20:
		score += 10
	case engagement >= 10:
		score += 7
	case engagement >= 5:
		score += 4
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
