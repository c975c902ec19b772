package s3_scoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/scoringconfig"
	"github.com/wonny/vctrank/pkg/logger"
)

// PlacementFetcher returns a player's event placement history
type PlacementFetcher interface {
	FetchEventPlacements(ctx context.Context, playerLink string) ([]contracts.EventPlacement, error)
}

// Scorer computes the three component scores and the total
type Scorer struct {
	cfg        *scoringconfig.Config
	roleIndex  map[string]string
	placements PlacementFetcher
	collector  *collector.Collector
	logger     *logger.Logger
}

// NewScorer creates a new S3 scorer
func NewScorer(cfg *scoringconfig.Config, placements PlacementFetcher, coll *collector.Collector, log *logger.Logger) *Scorer {
	return &Scorer{
		cfg:        cfg,
		roleIndex:  cfg.RoleIndex(),
		placements: placements,
		collector:  coll,
		logger:     log.WithField("module", "s3_scoring"),
	}
}

// Score runs STAT_ENRICHED → SCORED in place for the given placement year.
// Players failing a precondition or a fetch keep their previous state.
// ⭐ SSOT: S3 선수 점수 계산은 여기서만
func (s *Scorer) Score(ctx context.Context, roster *contracts.Roster, year int) (*contracts.StageResult, error) {
	if year <= 0 {
		return nil, fmt.Errorf("score: current year must be set, got %d", year)
	}
	start := time.Now()

	results, err := s.collector.Run(ctx, contracts.StageScored, roster, func(ctx context.Context, p *contracts.Player) error {
		return s.scorePlayer(ctx, p, year)
	})
	if err != nil {
		return nil, fmt.Errorf("score players: %w", err)
	}

	roster.Stage = contracts.StageScored
	result := collector.Summarize(contracts.StageScored, results, start)

	s.logger.WithFields(map[string]interface{}{
		"league":   roster.Category,
		"year":     year,
		"scored":   result.OutputCount,
		"skipped":  result.Skipped,
		"failures": result.Failures,
	}).Info("S3 completed")

	return result, nil
}

func (s *Scorer) scorePlayer(ctx context.Context, p *contracts.Player, year int) error {
	if p.Rating == "" {
		return &contracts.PreconditionError{Player: p.Link, Reason: "empty rating"}
	}
	if len(p.Agents) == 0 {
		return &contracts.PreconditionError{Player: p.Link, Reason: "no agent stats"}
	}

	rating, err := RatingScore(p.Rating, p.IsIGL(), s.cfg.Rating)
	if err != nil {
		return err
	}

	flexibility := FlexibilityScore(p.Agents, s.roleIndex, s.cfg.Flexibility)

	experience, err := s.experience(ctx, p.Link, year)
	if err != nil {
		return err
	}

	total := round2(float64(rating) + flexibility + experience)
	p.RatingScore = &rating
	p.AgentFlexibility = &flexibility
	p.Experience = &experience
	p.TotalScore = &total
	return nil
}

// experience: a missing placement section scores 0, a fetch failure skips the player
func (s *Scorer) experience(ctx context.Context, playerLink string, year int) (float64, error) {
	events, err := s.placements.FetchEventPlacements(ctx, playerLink)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return round2(PlacementScore(events, year, s.cfg.Placement)), nil
}

var _ contracts.RosterScorer = (*Scorer)(nil)
