package selection

import (
	"context"
	"sort"
	"time"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

// Ranker implements S4: ordering by total score
// ⭐ SSOT: S4 랭킹 로직은 여기서만
type Ranker struct {
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(logger *logger.Logger) *Ranker {
	return &Ranker{
		logger: logger,
	}
}

// Rank runs SCORED → RANKED in place
func (r *Ranker) Rank(ctx context.Context, roster *contracts.Roster) (*contracts.StageResult, error) {
	start := time.Now()

	SortByTotal(roster.Players)
	roster.Stage = contracts.StageRanked

	result := &contracts.StageResult{
		Stage:       contracts.StageRanked,
		InputCount:  len(roster.Players),
		OutputCount: roster.ScoredCount(),
		Skipped:     len(roster.Players) - roster.ScoredCount(),
		Duration:    time.Since(start).Milliseconds(),
	}

	fields := map[string]interface{}{
		"league":  roster.Category,
		"players": len(roster.Players),
		"scored":  result.OutputCount,
	}
	if len(roster.Players) > 0 && roster.Players[0].HasTotal() {
		fields["top_player"] = roster.Players[0].Name
		fields["top_score"] = *roster.Players[0].TotalScore
	}
	r.logger.WithFields(fields).Info("Ranking completed")

	return result, nil
}

// SortByTotal stable-sorts players by descending total score.
// A missing total orders as 0 and is not written back.
func SortByTotal(players []contracts.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].SortScore() > players[j].SortScore()
	})
}

var _ contracts.RosterRanker = (*Ranker)(nil)
