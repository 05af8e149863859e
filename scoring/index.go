// Package scoring holds the pure calculations: the blog-level influence
// index, the per-post optimization score, and the aggregate SEO report.
// Everything here is deterministic in its inputs.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/use-agent/blogdex/models"
)

// IndexInput is the blog-level field set the index calculation reads.
type IndexInput struct {
	DailyVisitors     int
	YesterdayVisitors int
	TotalVisitors     int
	Neighbors         int
	TotalPosts        int
	Recent30DaysPosts int
	BlogAgeDays       int
}

// Visitor-source tags recorded in the result so callers can see which
// fallback supplied the daily figure.
const (
	sourceToday          = "today"
	sourceYesterdayFull  = "yesterday_full"
	sourceYesterday50Pct = "yesterday_50pct"
	sourceYesterday30Pct = "yesterday_30pct"
	sourceTotalEstimated = "total_estimated"
	sourceTotalTier      = "total_tier"
)

// CalculateIndex computes the influence index from the crawled fields plus
// the caller-supplied weekly visitor average. The daily-visitor figure is
// resolved through a fallback chain before scoring: the weekly average when
// at least 3 days back it, otherwise yesterday's count scaled by time of
// day, then an estimate from the cumulative total, then a neighbor-count
// floor. Exposure dominates the composite at 70% and caps the total when
// low, so a blog cannot score high on activity alone.
func CalculateIndex(in IndexInput, weeklyAvg, weeklyCount int, now time.Time) models.IndexResult {
	daily := in.DailyVisitors
	source := sourceToday

	if weeklyAvg > 0 && weeklyCount >= 3 {
		daily = weeklyAvg
		source = fmt.Sprintf("weekly_avg_%ddays", weeklyCount)
	} else {
		// Today's counter resets at midnight, so a tiny reading early in
		// the day says nothing; fall back to yesterday, scaled by how much
		// of today has elapsed.
		if daily < 10 && in.YesterdayVisitors > 0 {
			switch hour := now.Hour(); {
			case hour < 6:
				daily = in.YesterdayVisitors
				source = sourceYesterdayFull
			case hour < 12:
				daily = max(daily, in.YesterdayVisitors/2)
				source = sourceYesterday50Pct
			default:
				daily = max(daily, int(float64(in.YesterdayVisitors)*0.3))
				source = sourceYesterday30Pct
			}
		}

		if daily < 10 && in.TotalVisitors > 0 {
			if in.BlogAgeDays > 0 {
				estimated := float64(in.TotalVisitors) / float64(in.BlogAgeDays)
				daily = max(daily, int(estimated*0.7))
				source = sourceTotalEstimated
			} else {
				daily = max(daily, totalTierFloor(in.TotalVisitors))
				source = sourceTotalTier
			}
		}
	}

	if daily < 10 {
		switch {
		case in.Neighbors >= 500:
			daily = max(daily, 50)
		case in.Neighbors >= 100:
			daily = max(daily, 20)
		case in.Neighbors >= 30:
			daily = max(daily, 10)
		}
	}

	exposure := exposureScore(daily)
	activity := activityScore(in.Recent30DaysPosts)
	trust := trustScore(in.Neighbors, in.TotalVisitors, in.TotalPosts)

	total := exposure*0.7 + activity*0.15 + trust*0.15

	if exposure < 20 {
		total = math.Min(total, 35)
	} else if exposure < 40 {
		total = math.Min(total, 50)
	}

	tier := gradeFor(total)

	reliability, msg := reliabilityFor(weeklyCount)

	return models.IndexResult{
		Grade: tier.Grade,
		Level: tier.Level,
		Score: round2(total),
		Color: tier.Color,
		Breakdown: models.IndexBreakdown{
			Exposure: round2(exposure),
			Activity: round2(activity),
			Trust:    round2(trust),
		},
		Detail: models.IndexDetail{
			DailyVisitors:     daily,
			TotalVisitors:     in.TotalVisitors,
			Recent30DaysPosts: in.Recent30DaysPosts,
			TotalPosts:        in.TotalPosts,
			Neighbors:         in.Neighbors,
		},
		VisitorSource:   source,
		DataReliability: reliability,
		ReliabilityMsg:  msg,
		WeeklyCount:     weeklyCount,
	}
}

// totalTierFloor maps a cumulative visitor total to a minimum plausible
// daily figure when the blog's age is unknown.
func totalTierFloor(total int) int {
	switch {
	case total >= 100000:
		return 150
	case total >= 50000:
		return 100
	case total >= 20000:
		return 60
	case total >= 10000:
		return 40
	case total >= 5000:
		return 25
	case total >= 2000:
		return 15
	case total >= 1000:
		return 10
	case total >= 500:
		return 8
	default:
		return 0
	}
}

// exposureScore maps daily visitors onto [0,100] through a piecewise-linear
// curve that grows fast at the bottom and saturates near 100.
func exposureScore(daily int) float64 {
	d := float64(daily)
	switch {
	case daily >= 1000:
		return 95 + math.Min(5, (d-1000)/1000)
	case daily >= 500:
		return 85 + (d-500)/50
	case daily >= 200:
		return 70 + (d-200)/20
	case daily >= 100:
		return 55 + (d-100)/6.67
	case daily >= 50:
		return 40 + (d-50)/3.33
	case daily >= 20:
		return 25 + (d-20)/2
	case daily >= 5:
		return 10 + (d - 5)
	default:
		return d * 2
	}
}

// activityScore rewards a moderate posting cadence. 60-89 posts in 30 days
// is the sweet spot; 120 and up reads as spam and scores a flat 40.
func activityScore(recentPosts int) float64 {
	r := float64(recentPosts)
	switch {
	case recentPosts >= 120:
		return 40
	case recentPosts >= 60:
		return 70 + (90 - r)
	case recentPosts >= 30:
		return 60 + (r-30)*0.33
	case recentPosts >= 10:
		return 40 + (r - 10)
	default:
		return r * 4
	}
}

// trustScore sums capped log curves over neighbors, cumulative visitors
// and total posts.
func trustScore(neighbors, totalVisitors, totalPosts int) float64 {
	score := 0.0
	if neighbors > 0 {
		score += math.Min(30, 10*math.Log10(float64(neighbors)+1))
	}
	if totalVisitors > 0 {
		score += math.Min(40, 8*math.Log10(float64(totalVisitors)+1))
	}
	if totalPosts > 0 {
		score += math.Min(30, 10*math.Log10(float64(totalPosts)+1))
	}
	return score
}

func reliabilityFor(weeklyCount int) (string, string) {
	switch {
	case weeklyCount >= 7:
		return models.ReliabilityHigh, fmt.Sprintf("%d일 평균 데이터 (신뢰도 높음)", weeklyCount)
	case weeklyCount >= 3:
		return models.ReliabilityMedium, fmt.Sprintf("%d일 평균 데이터 (신뢰도 보통)", weeklyCount)
	default:
		return models.ReliabilityLow, "분석 데이터 부족 (3일 이상 분석 필요)"
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
