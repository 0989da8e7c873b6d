package parser

import (
	"math"

	"github.com/portalempleos/backend/models"
)

// ConfidenceScore computes a weighted completeness metric over the parsed
// fields, normalized to [0, 1] and rounded to two decimals. Weights: name
// 15, email 10, title 10, years of experience 15, skills 2 per entry capped
// at 20, work history 5 per entry capped at 15, education 5 per entry capped
// at 10, languages 5. A heuristic, not a statistical model.
func ConfidenceScore(md *models.CVMetadata) float64 {
	score := 0
	maxScore := 0

	maxScore += 15
	if md.FullName != "" {
		score += 15
	}

	maxScore += 10
	if md.Email != "" {
		score += 10
	}

	maxScore += 10
	if md.Title != "" {
		score += 10
	}

	maxScore += 15
	if md.YearsExp > 0 {
		score += 15
	}

	maxScore += 20
	if len(md.Skills) > 0 {
		score += min(20, len(md.Skills)*2)
	}

	maxScore += 15
	if len(md.WorkHistory) > 0 {
		score += min(15, len(md.WorkHistory)*5)
	}

	maxScore += 10
	if len(md.Education) > 0 {
		score += min(10, len(md.Education)*5)
	}

	maxScore += 5
	if len(md.Languages) > 0 {
		score += 5
	}

	return math.Round(float64(score)/float64(maxScore)*100) / 100
}
