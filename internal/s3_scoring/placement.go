package s3_scoring

import (
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/scoringconfig"
)

const firstPlace = "1st"

// PlacementPoints scores one event by the first matching tier.
// Inside a tier: "1st" uses first, a top placement uses top, anything else
// uses other; an unset value falls through to the next one, then to 0.
func PlacementPoints(tournament, placement string, table scoringconfig.Placement) int {
	for i := range table.Tiers {
		tier := &table.Tiers[i]
		if !tier.Matches(tournament) {
			continue
		}

		pts := tier.Points
		if placement == firstPlace && pts.First != nil {
			return *pts.First
		}
		if table.IsTopPlacement(placement) && pts.Top != nil {
			return *pts.Top
		}
		if pts.Other != nil {
			return *pts.Other
		}
		return 0
	}
	return 0
}

// PlacementScore is the best event score among events of the given year, 0 if none
// ⭐ SSOT: 경력 점수 계산은 여기서만
func PlacementScore(events []contracts.EventPlacement, year int, table scoringconfig.Placement) float64 {
	best := 0
	for _, e := range events {
		if e.Year != year {
			continue
		}
		if pts := PlacementPoints(e.Tournament, e.Placement, table); pts > best {
			best = pts
		}
	}
	return float64(best)
}
