package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/wonny/vctrank/internal/brain"
	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/external/vlr"
	"github.com/wonny/vctrank/internal/s0_roster"
	"github.com/wonny/vctrank/internal/s1_roles"
	"github.com/wonny/vctrank/internal/s2_stats"
	"github.com/wonny/vctrank/internal/s3_scoring"
	"github.com/wonny/vctrank/internal/scoringconfig"
	"github.com/wonny/vctrank/internal/selection"
	"github.com/wonny/vctrank/pkg/config"
	"github.com/wonny/vctrank/pkg/httputil"
	"github.com/wonny/vctrank/pkg/logger"
	"github.com/wonny/vctrank/pkg/redis"
)

const (
	redisPrefix        = "vlr"
	breakerOpenTimeout = 30 * time.Second
)

// deps bundles everything a command needs; close releases Redis
type deps struct {
	cfg          *config.Config
	log          *logger.Logger
	scoring      *scoringconfig.Config
	orchestrator *brain.Orchestrator
	close        func()
}

// loadConfig reads env config and applies global flag overrides
func loadConfig() (*config.Config, error) {
	if env != "" {
		if err := os.Setenv("ENV", env); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if scoringConfig != "" {
		cfg.ScoringConfigPath = scoringConfig
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// loadScoring loads the scoring config (file or embedded default)
func loadScoring(cfg *config.Config) (*scoringconfig.Config, error) {
	scoring, _, err := scoringconfig.LoadOrDefault(cfg.ScoringConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load scoring config: %w", err)
	}
	return scoring, nil
}

func initDeps() (*deps, error) {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Scoring config
	scoring, err := loadScoring(cfg)
	if err != nil {
		return nil, err
	}

	// 4. Redis (optional page cache + shared limiter)
	rdb, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// 5. Create HTTP client
	httpClient := httputil.New(cfg, log).
		WithCircuitBreaker("vlr", cfg.HTTP.BreakerMaxFailures, breakerOpenTimeout)
	if rdb.Enabled() {
		// 여러 프로세스가 같은 사이트를 긁을 때 초당 한도를 공유
		httpClient = httpClient.WithRateLimiter(redis.NewRateLimiter(rdb, redisPrefix), redis.VLRRateLimit(cfg.HTTP.RequestDelay))
	}

	// 6. Create external client
	vlrClient := vlr.NewClient(httpClient, log).
		WithBaseURL(cfg.VLR.BaseURL).
		WithTimespan(cfg.VLR.StatsTimespan).
		WithSelectors(cfg.VLR.AgentTableSelector, cfg.VLR.TeamLinkSelector)
	if rdb.Enabled() {
		vlrClient = vlrClient.WithPageCache(redis.NewCache(rdb, redisPrefix), cfg.VLR.PageCacheTTL)
	}

	// 7. Create repository
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	repo := s0_roster.NewRepository(cfg.DataDir, log)

	// 8. Create stage components (S1~S4)
	coll := collector.NewCollector(collector.Config{Workers: cfg.HTTP.Workers}, log)
	tagger := s1_roles.NewTagger(vlrClient, coll, log)
	enricher := s2_stats.NewEnricher(vlrClient, coll, log)
	scorer := s3_scoring.NewScorer(scoring, vlrClient, coll, log)
	ranker := selection.NewRanker(log)

	// 9. Create Orchestrator
	orchestrator := brain.NewOrchestrator(tagger, enricher, scorer, ranker, repo, scoring, log)

	return &deps{
		cfg:          cfg,
		log:          log,
		scoring:      scoring,
		orchestrator: orchestrator,
		close: func() {
			if err := rdb.Close(); err != nil {
				log.WithError(err).Warn("Redis close failed")
			}
		},
	}, nil
}
