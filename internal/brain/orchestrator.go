package brain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/s0_roster"
	"github.com/wonny/vctrank/internal/scoringconfig"
	"github.com/wonny/vctrank/internal/selection"
	"github.com/wonny/vctrank/pkg/logger"
)

// Orchestrator coordinates the per-league pipeline
// RAW → ROLE_TAGGED → STAT_ENRICHED → SCORED → RANKED
// ⭐ SSOT: 파이프라인 조율은 여기서만
type Orchestrator struct {
	// Stage components
	tagger   contracts.RoleTagger
	enricher contracts.StatEnricher
	scorer   contracts.RosterScorer
	ranker   contracts.RosterRanker

	// Stage files + igls.json
	repo *s0_roster.Repository

	scoring *scoringconfig.Config
	logger  *logger.Logger
}

// RunConfig holds configuration for one league run
type RunConfig struct {
	Category    contracts.Category
	CurrentYear int
	// FromStage is the first stage computed; the previous stage's file is loaded.
	// Empty means a full run from the raw roster.
	FromStage contracts.Stage
	RunID     string
	// Input replaces loading the raw file (a RAW roster already filtered
	// against higher leagues). Only valid for full runs.
	Input *contracts.Roster
}

// RunResult holds the results of one league run
type RunResult struct {
	RunID           string
	Category        contracts.Category
	ConfigHash      string
	Success         bool
	Error           error
	CompletedStages []string
	Stages          []*contracts.StageResult
	IGLs            []contracts.IGLEntry
	Players         int
	Duration        time.Duration
}

// StageResult returns the result recorded for a stage, or nil
func (r *RunResult) StageResult(stage contracts.Stage) *contracts.StageResult {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s
		}
	}
	return nil
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	tagger contracts.RoleTagger,
	enricher contracts.StatEnricher,
	scorer contracts.RosterScorer,
	ranker contracts.RosterRanker,
	repo *s0_roster.Repository,
	scoring *scoringconfig.Config,
	logger *logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		tagger:   tagger,
		enricher: enricher,
		scorer:   scorer,
		ranker:   ranker,
		repo:     repo,
		scoring:  scoring,
		logger:   logger,
	}
}

// Priority returns the league order used by RunAll, Filter and Combine
func (o *Orchestrator) Priority() []contracts.Category {
	if len(o.scoring.Leagues.Priority) == 0 {
		return contracts.AllCategories()
	}
	return o.scoring.Leagues.Priority
}

// Run executes one league from config.FromStage through RANKED, saving the
// roster after every stage so a later run can resume from any of them
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	result := &RunResult{
		RunID:           config.RunID,
		Category:        config.Category,
		CompletedStages: make([]string, 0),
		Stages:          make([]*contracts.StageResult, 0),
		IGLs:            make([]contracts.IGLEntry, 0),
	}

	from, err := o.validate(config)
	if err != nil {
		result.Error = err
		return result, err
	}

	snapshot, err := scoringconfig.NewSnapshot(o.scoring, config.RunID)
	if err != nil {
		result.Error = fmt.Errorf("scoring config hash: %w", err)
		return result, result.Error
	}
	result.ConfigHash = snapshot.ConfigHash

	log := o.logger.WithFields(map[string]interface{}{
		"run_id": config.RunID,
		"league": config.Category,
	})
	log.WithFields(map[string]interface{}{
		"from":           from,
		"year":           config.CurrentYear,
		"config_id":      snapshot.ConfigID,
		"config_version": snapshot.Version,
		"config_hash":    snapshot.ConfigHash,
	}).Info("Starting pipeline run")

	roster := config.Input
	if roster == nil {
		input, _ := from.Previous()
		roster, err = o.repo.Load(ctx, config.Category, input)
		if err != nil {
			result.Error = fmt.Errorf("load %s: %w", input, err)
			return result, result.Error
		}
	}
	result.Players = roster.Len()

	stages := contracts.AllStages()
	for _, stage := range stages[from.Index():] {
		stageResult, err := o.runStage(ctx, stage, roster, config)
		if err != nil {
			result.Error = fmt.Errorf("%s failed: %w", stage.ShortName(), err)
			return result, result.Error
		}
		// 스테이지 컴포넌트가 갱신하지 않아도 파일에는 도달 스테이지를 기록
		roster.Stage = stage

		if err := o.repo.Save(ctx, roster); err != nil {
			result.Error = fmt.Errorf("save %s: %w", stage, err)
			return result, result.Error
		}

		if stage == contracts.StageRoleTagged {
			igls := roster.IGLs()
			if err := o.repo.AppendIGLs(ctx, igls); err != nil {
				result.Error = fmt.Errorf("append igls: %w", err)
				return result, result.Error
			}
			result.IGLs = igls
		}

		result.Stages = append(result.Stages, stageResult)
		result.CompletedStages = append(result.CompletedStages, fmt.Sprintf("%s:%s", stage.ShortName(), stage))

		log.WithFields(map[string]interface{}{
			"stage":       stage,
			"input":       stageResult.InputCount,
			"output":      stageResult.OutputCount,
			"failures":    stageResult.Failures,
			"skipped":     stageResult.Skipped,
			"duration_ms": stageResult.Duration,
		}).Info(fmt.Sprintf("%s completed", stage.ShortName()))
	}

	result.Success = true
	result.Duration = time.Since(startTime)

	log.WithFields(map[string]interface{}{
		"duration": result.Duration.Seconds(),
		"stages":   len(result.CompletedStages),
		"igls":     len(result.IGLs),
	}).Info("Pipeline run completed successfully")

	return result, nil
}

func (o *Orchestrator) validate(config RunConfig) (contracts.Stage, error) {
	if !config.Category.IsValid() {
		return "", fmt.Errorf("unknown league %q", config.Category)
	}

	from := config.FromStage
	if from == "" || from == contracts.StageRaw {
		from = contracts.StageRoleTagged
	}
	if from.Index() < 0 {
		return "", fmt.Errorf("unknown stage %q", config.FromStage)
	}
	if in := config.Input; in != nil {
		if from != contracts.StageRoleTagged {
			return "", fmt.Errorf("input roster requires a full run, got --from %s", from)
		}
		if in.Category != config.Category || in.Stage != contracts.StageRaw {
			return "", fmt.Errorf("input roster is %s/%s, want %s/%s", in.Category, in.Stage, config.Category, contracts.StageRaw)
		}
	}
	// S3 이전에 시작하더라도 연도는 미리 확인 (중간 실패 방지)
	if from.Index() <= contracts.StageScored.Index() && config.CurrentYear <= 0 {
		return "", fmt.Errorf("current year must be set, got %d", config.CurrentYear)
	}
	return from, nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage contracts.Stage, roster *contracts.Roster, config RunConfig) (*contracts.StageResult, error) {
	switch stage {
	case contracts.StageRoleTagged:
		return o.tagger.Tag(ctx, roster)
	case contracts.StageStatEnriched:
		return o.enricher.Enrich(ctx, roster)
	case contracts.StageScored:
		return o.scorer.Score(ctx, roster, config.CurrentYear)
	case contracts.StageRanked:
		return o.ranker.Rank(ctx, roster)
	default:
		return nil, fmt.Errorf("stage %s has no component", stage)
	}
}

// RunAllConfig holds configuration for a run over every league
type RunAllConfig struct {
	CurrentYear int
	RunID       string
	// Filter drops from each raw roster the players of higher-priority
	// leagues before S1 (filtered-{league}.json + report are written)
	Filter bool
}

// RunAll clears igls.json, runs every league with a raw roster in priority
// order, then writes the combined ranking. A failing league does not stop
// the others; all failures are returned joined.
func (o *Orchestrator) RunAll(ctx context.Context, config RunAllConfig) ([]*RunResult, error) {
	if err := o.repo.ClearIGLs(ctx); err != nil {
		return nil, err
	}

	results := make([]*RunResult, 0)
	var errs []error
	higher := make([]*contracts.Roster, 0)
	for _, category := range o.Priority() {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		if !o.repo.Exists(category, contracts.StageRaw) {
			o.logger.WithField("league", category).Info("No raw roster, skipping league")
			continue
		}

		runConfig := RunConfig{
			Category:    category,
			CurrentYear: config.CurrentYear,
			RunID:       config.RunID,
		}

		var err error
		if config.Filter {
			var raw *contracts.Roster
			raw, runConfig.Input, err = o.filterRaw(ctx, category, higher)
			if err != nil {
				results = append(results, &RunResult{RunID: config.RunID, Category: category, Error: err})
				o.logger.WithError(err).WithField("league", category).Error("League filter failed")
				errs = append(errs, fmt.Errorf("%s: %w", category, err))
				continue
			}
			higher = append(higher, raw)
		}

		result, err := o.Run(ctx, runConfig)
		results = append(results, result)
		if err != nil {
			o.logger.WithError(err).WithField("league", category).Error("League run failed")
			errs = append(errs, fmt.Errorf("%s: %w", category, err))
		}
	}

	if _, _, err := o.Combine(ctx, ""); err != nil {
		errs = append(errs, fmt.Errorf("combine: %w", err))
	}

	return results, errors.Join(errs...)
}

// filterRaw loads the raw roster of a league and removes the players of the
// higher leagues already loaded. The unfiltered roster is returned too, since
// lower leagues are compared against it.
func (o *Orchestrator) filterRaw(ctx context.Context, category contracts.Category, higher []*contracts.Roster) (*contracts.Roster, *contracts.Roster, error) {
	raw, err := o.repo.LoadRaw(ctx, category)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", contracts.StageRaw, err)
	}
	if len(higher) == 0 {
		return raw, raw, nil
	}

	filtered, report := selection.Filter(raw, higher)
	if err := o.saveFiltered(ctx, s0_roster.FilteredFile(category), filtered, report); err != nil {
		return nil, nil, err
	}
	return raw, filtered, nil
}

// saveFiltered writes a filtered roster and filter-report-{league}.json
func (o *Orchestrator) saveFiltered(ctx context.Context, output string, filtered *contracts.Roster, report *contracts.FilterReport) error {
	if err := o.repo.SaveAs(ctx, output, filtered); err != nil {
		return err
	}
	reportFile := s0_roster.FilterReportFile(report.Target)
	if err := o.repo.WriteJSON(reportFile, report); err != nil {
		return err
	}

	o.logger.WithFields(map[string]interface{}{
		"target":   report.Target,
		"original": report.OriginalCount,
		"filtered": report.FilteredCount,
		"removed":  report.RemovedCount(),
		"file":     output,
		"report":   reportFile,
	}).Info("Filter completed")
	return nil
}

// Combine merges every ranked league file into one ranking and saves it to
// output (default players_scored_combined.json). Identity keys appearing in
// more than one league are returned, not removed.
func (o *Orchestrator) Combine(ctx context.Context, output string) (*contracts.Roster, []string, error) {
	if output == "" {
		output = s0_roster.CombinedFile
	}

	rosters := make([]*contracts.Roster, 0)
	for _, category := range o.Priority() {
		if !o.repo.Exists(category, contracts.StageRanked) {
			continue
		}
		r, err := o.repo.Load(ctx, category, contracts.StageRanked)
		if err != nil {
			return nil, nil, err
		}
		rosters = append(rosters, r)
	}
	if len(rosters) == 0 {
		return nil, nil, fmt.Errorf("no ranked league files in %s", o.repo.Dir())
	}

	combined, duplicates := selection.Combine(rosters...)
	if len(duplicates) > 0 {
		o.logger.WithFields(map[string]interface{}{
			"duplicates": len(duplicates),
			"first":      duplicates[0],
		}).Warn("Combined ranking contains players from several leagues (run filter first)")
	}

	if err := o.repo.SaveAs(ctx, output, combined); err != nil {
		return nil, nil, err
	}

	o.logger.WithFields(map[string]interface{}{
		"leagues": len(rosters),
		"players": combined.Len(),
		"file":    output,
	}).Info("Combine completed")

	return combined, duplicates, nil
}

// FilterConfig selects the target league and the stage files to compare
type FilterConfig struct {
	Target contracts.Category
	// Source defaults to RAW
	Source contracts.Stage
	// Output defaults to filtered-{target}.json
	Output string
}

// Filter removes from the target league every player present in a league
// of higher priority and writes the filtered roster and its report
func (o *Orchestrator) Filter(ctx context.Context, config FilterConfig) (*contracts.Roster, *contracts.FilterReport, error) {
	if !config.Target.IsValid() {
		return nil, nil, fmt.Errorf("unknown league %q", config.Target)
	}
	source := config.Source
	if source == "" {
		source = contracts.StageRaw
	}
	output := config.Output
	if output == "" {
		output = s0_roster.FilteredFile(config.Target)
	}

	priority := o.Priority()
	rosters := make(map[contracts.Category]*contracts.Roster, len(priority))
	for _, category := range priority {
		r, err := o.repo.Load(ctx, category, source)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", category, err)
		}
		rosters[category] = r
		if category == config.Target {
			break
		}
	}

	filtered, report, err := selection.FilterByPriority(rosters, priority, config.Target)
	if err != nil {
		return nil, nil, err
	}

	if err := o.saveFiltered(ctx, output, filtered, report); err != nil {
		return nil, nil, err
	}
	return filtered, report, nil
}

// Status returns the completed stage files of every league
func (o *Orchestrator) Status() map[contracts.Category][]contracts.Stage {
	status := make(map[contracts.Category][]contracts.Stage)
	for _, category := range o.Priority() {
		status[category] = o.repo.CompletedStages(category)
	}
	return status
}

// GenerateRunID generates a unique run ID
func GenerateRunID() string {
	return fmt.Sprintf("run_%s_%s", time.Now().Format("20060102_150405"), uuid.NewString()[:8])
}
