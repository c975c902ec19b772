package s2_stats

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/external/vlr"
	"github.com/wonny/vctrank/pkg/logger"
)

// StatsFetcher returns a player's agent stats table
type StatsFetcher interface {
	FetchAgentStats(ctx context.Context, playerLink string) (*vlr.AgentTable, error)
}

// Enricher attaches per-agent statistics to every player
type Enricher struct {
	fetcher   StatsFetcher
	collector *collector.Collector
	logger    *logger.Logger
}

// NewEnricher creates a new S2 enricher
func NewEnricher(fetcher StatsFetcher, coll *collector.Collector, log *logger.Logger) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		collector: coll,
		logger:    log.WithField("module", "s2_stats"),
	}
}

// Enrich runs ROLE_TAGGED → STAT_ENRICHED in place.
// Players without a stats table keep no agents and stay in the roster.
// ⭐ SSOT: S2 요원 스탯 부착은 여기서만
func (e *Enricher) Enrich(ctx context.Context, roster *contracts.Roster) (*contracts.StageResult, error) {
	start := time.Now()
	var rowFailures atomic.Int64

	results, err := e.collector.Run(ctx, contracts.StageStatEnriched, roster, func(ctx context.Context, p *contracts.Player) error {
		p.Agents = nil

		table, err := e.fetcher.FetchAgentStats(ctx, p.Link)
		if err != nil {
			if errors.Is(err, contracts.ErrNotFound) {
				return &contracts.PreconditionError{Player: p.Link, Reason: "no agent stats table"}
			}
			return err
		}

		p.Agents = table.Agents
		if len(table.RowErrors) > 0 {
			rowFailures.Add(int64(len(table.RowErrors)))
			e.logger.WithError(errors.Join(table.RowErrors...)).WithFields(map[string]interface{}{
				"player": p.Link,
				"league": roster.Category,
				"stage":  contracts.StageStatEnriched,
				"rows":   len(table.RowErrors),
			}).Warn("Skipped unparsable agent rows")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enrich stats: %w", err)
	}

	roster.Stage = contracts.StageStatEnriched
	result := collector.Summarize(contracts.StageStatEnriched, results, start)
	result.Failures += int(rowFailures.Load())

	e.logger.WithFields(map[string]interface{}{
		"league":   roster.Category,
		"enriched": result.OutputCount,
		"no_table": result.Skipped,
		"failures": result.Failures,
	}).Info("S2 completed")

	return result, nil
}

var _ contracts.StatEnricher = (*Enricher)(nil)
