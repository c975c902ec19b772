package s3_scoring

import (
	"math"
	"strings"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/scoringconfig"
)

// FlexibilityScore = distinct played agents + distinct covered roles
// + (average agent rating / rating_scale) * rating_weight.
// Agents without a parsable rating count toward nothing. Agent names are
// matched case-insensitively against roleIndex (lower-case keys).
func FlexibilityScore(agents []contracts.AgentStat, roleIndex map[string]string, params scoringconfig.Flexibility) float64 {
	played := make(map[string]struct{})
	covered := make(map[string]struct{})
	total := 0.0
	count := 0

	for _, a := range agents {
		rating, err := a.Rating.Float("agent rating")
		if err != nil {
			continue
		}

		name := strings.ToLower(strings.TrimSpace(a.Agent))
		played[name] = struct{}{}
		total += rating
		count++

		if role, ok := roleIndex[name]; ok {
			covered[role] = struct{}{}
		}
	}

	score := float64(len(played) + len(covered))
	if count > 0 {
		avg := total / float64(count)
		score += (avg / params.RatingScale) * params.RatingWeight
	}
	return round2(score)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
