package collector

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

// Collector runs per-player fetch work over a roster
// ⭐ SSOT: 선수 단위 외부 수집 루프는 이 패키지에서만
type Collector struct {
	workers int
	logger  *logger.Logger
}

// Config holds collector configuration
type Config struct {
	Workers int // Number of concurrent workers
}

// PlayerFunc enriches one player in place. Returned errors are per-player
// and never stop the loop.
type PlayerFunc func(ctx context.Context, p *contracts.Player) error

// FetchResult represents the result of one player's work
type FetchResult struct {
	Index  int
	Player string
	Error  error
}

// NewCollector creates a new Collector instance
func NewCollector(cfg Config, log *logger.Logger) *Collector {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Collector{
		workers: workers,
		logger:  log.WithField("module", "collector"),
	}
}

// Run calls fn for every player of the roster, at most cfg.Workers at a time.
// Each call only touches its own roster slot, so the roster order is kept
// whatever the completion order. Results are indexed like roster.Players.
// Only context cancellation is returned as an error.
func (c *Collector) Run(ctx context.Context, stage contracts.Stage, roster *contracts.Roster, fn PlayerFunc) ([]FetchResult, error) {
	results := make([]FetchResult, len(roster.Players))

	c.logger.WithFields(map[string]interface{}{
		"stage":   stage,
		"league":  roster.Category,
		"players": len(roster.Players),
		"workers": c.workers,
	}).Info("Starting player collection")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i := range roster.Players {
		i := i
		p := &roster.Players[i]
		results[i] = FetchResult{Index: i, Player: p.Link}

		if gctx.Err() != nil {
			results[i].Error = gctx.Err()
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Error = err
				return nil
			}
			if err := fn(gctx, p); err != nil {
				results[i].Error = err
				c.logFailure(stage, roster.Category, p, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (c *Collector) logFailure(stage contracts.Stage, category contracts.Category, p *contracts.Player, err error) {
	log := c.logger.WithError(err).WithFields(map[string]interface{}{
		"player": p.Link,
		"league": category,
		"stage":  stage,
	})
	if errors.Is(err, contracts.ErrMissingPrecondition) {
		log.Info("Player skipped")
		return
	}
	log.Warn("Player failed")
}

// Summarize counts the results into a stage result:
// MissingPrecondition → Skipped, any other error → Failures
func Summarize(stage contracts.Stage, results []FetchResult, started time.Time) *contracts.StageResult {
	sr := &contracts.StageResult{
		Stage:      stage,
		InputCount: len(results),
	}
	for _, r := range results {
		switch {
		case r.Error == nil:
			sr.OutputCount++
		case errors.Is(r.Error, contracts.ErrMissingPrecondition):
			sr.Skipped++
		default:
			sr.Failures++
		}
	}
	sr.Duration = time.Since(started).Milliseconds()
	return sr
}
