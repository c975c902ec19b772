package s3_scoring

import (
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/scoringconfig"
)

// ratingBand: closed interval [low, high]; score = base + floor((r - low) / 0.01)
type ratingBand struct {
	low, high   float64
	base        int
	interpolate bool
}

// 위에서부터 첫 매칭 밴드 적용 (경계값은 위 밴드 우선)
var ratingBands = []ratingBand{
	{1.30, 1.40, 30, false},
	{1.20, 1.29, 27, true},
	{1.10, 1.19, 24, true},
	{1.00, 1.09, 21, true},
	{0.90, 0.99, 18, true},
	{0.80, 0.89, 15, true},
	{0.70, 0.79, 12, true},
	{0.60, 0.69, 9, true},
	{0.50, 0.59, 6, true},
	{0.40, 0.49, 3, true},
}

const (
	ratingStep     = 0.01
	lowBandHigh    = 0.39
	lowBandDivisor = 0.195
	lowBandMax     = 2
)

// RatingPoints maps a rating onto the 0–30 curve, adds the IGL bonus and clamps
func RatingPoints(r float64, igl bool, params scoringconfig.Rating) int {
	score := curvePoints(r)
	if igl {
		score += params.IGLBonus
	}
	if score > params.MaxScore {
		score = params.MaxScore
	}
	return score
}

func curvePoints(r float64) int {
	for _, b := range ratingBands {
		if r >= b.low && r <= b.high {
			if !b.interpolate {
				return b.base
			}
			return b.base + int((r-b.low)/ratingStep)
		}
	}

	if r >= 0 && r <= lowBandHigh {
		n := int(r / lowBandDivisor)
		if n < 0 {
			n = 0
		}
		if n > lowBandMax {
			n = lowBandMax
		}
		return n
	}

	// 음수, 1.40 초과, 밴드 사이 틈(예: 1.295)
	return 0
}

// RatingScore parses the player rating; an unparsable value is a *contracts.ParseError
func RatingScore(rating contracts.StatValue, igl bool, params scoringconfig.Rating) (int, error) {
	r, err := rating.Float("rating")
	if err != nil {
		return 0, err
	}
	return RatingPoints(r, igl, params), nil
}
