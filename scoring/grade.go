package scoring

// gradeTier is one entry in the grade ladder.
type gradeTier struct {
	Min   float64
	Grade string
	Level string
	Color string
}

// gradeTiers is the ladder from best to worst; the first tier whose
// threshold the score reaches wins. The final entry is the catch-all, so
// every score maps to exactly one tier.
var gradeTiers = []gradeTier{
	{85, "최적", "optimal", "#00C853"},
	{80, "NB", "nb", "#00E676"},
	{75, "준최1", "semi1", "#69F0AE"},
	{70, "준최2", "semi2", "#B9F6CA"},
	{65, "준최3", "semi3", "#FFC107"},
	{60, "준최4", "semi4", "#FFD54F"},
	{55, "준최5", "semi5", "#FFE082"},
	{50, "준최6", "semi6", "#FFAB91"},
	{45, "준최7", "semi7", "#FF8A65"},
	{30, "일반", "normal", "#9E9E9E"},
	{0, "저품", "low", "#F44336"},
}

// gradeFor maps a composite score onto its grade tier.
func gradeFor(score float64) gradeTier {
	for _, tier := range gradeTiers {
		if score >= tier.Min {
			return tier
		}
	}
	return gradeTiers[len(gradeTiers)-1]
}
