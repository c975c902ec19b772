package s1_roles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/external/vlr"
	"github.com/wonny/vctrank/pkg/logger"
)

// TeamResolver follows profile → team → captain links
type TeamResolver interface {
	FetchTeamLink(ctx context.Context, playerLink string) (string, error)
	FetchCaptainLink(ctx context.Context, teamHref string) (string, error)
}

// Tagger tags every player with its league and derives the IGL flag
type Tagger struct {
	resolver  TeamResolver
	collector *collector.Collector
	logger    *logger.Logger
}

// NewTagger creates a new S1 tagger
func NewTagger(resolver TeamResolver, coll *collector.Collector, log *logger.Logger) *Tagger {
	return &Tagger{
		resolver:  resolver,
		collector: coll,
		logger:    log.WithField("module", "s1_roles"),
	}
}

// Tag runs RAW → ROLE_TAGGED in place
// ⭐ SSOT: S1 IGL 판별은 여기서만
func (t *Tagger) Tag(ctx context.Context, roster *contracts.Roster) (*contracts.StageResult, error) {
	start := time.Now()

	results, err := t.collector.Run(ctx, contracts.StageRoleTagged, roster, func(ctx context.Context, p *contracts.Player) error {
		p.League = roster.League
		p.Role = ""

		igl, err := t.isCaptain(ctx, p.Link)
		if err != nil {
			return err
		}
		if igl {
			p.Role = contracts.RoleIGL
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tag roles: %w", err)
	}

	roster.Stage = contracts.StageRoleTagged
	result := collector.Summarize(contracts.StageRoleTagged, results, start)
	// 조회 실패 선수도 리그 태그는 붙으므로 모두 출력으로 집계
	result.OutputCount = len(roster.Players)

	t.logger.WithFields(map[string]interface{}{
		"league":   roster.Category,
		"players":  len(roster.Players),
		"igls":     len(roster.IGLs()),
		"failures": result.Failures,
	}).Info("S1 completed")

	return result, nil
}

// isCaptain reports whether the player's current team names them captain.
// A missing link anywhere in the chain is "not captain", not an error;
// transport failures are returned so they get counted.
func (t *Tagger) isCaptain(ctx context.Context, playerLink string) (bool, error) {
	team, err := t.resolver.FetchTeamLink(ctx, playerLink)
	if err != nil {
		return false, ignoreNotFound(err)
	}

	captain, err := t.resolver.FetchCaptainLink(ctx, team)
	if err != nil {
		return false, ignoreNotFound(err)
	}

	return playerLink == vlr.LinkFromHref(captain), nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, contracts.ErrNotFound) {
		return nil
	}
	return err
}

var _ contracts.RoleTagger = (*Tagger)(nil)
