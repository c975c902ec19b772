package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/vctrank/internal/brain"
	"github.com/wonny/vctrank/internal/contracts"
)

// pipelineCmd represents the pipeline command
var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "리그별 파이프라인 실행",
	Long: `Brain Orchestrator가 리그별 5단계 파이프라인을 조율합니다.

RAW → ROLE_TAGGED → STAT_ENRICHED → SCORED → RANKED

각 단계:
- S1: 리그 태그 + IGL(팀 캡틴) 판별
- S2: 요원별 스탯 수집
- S3: rating / flexibility / experience 스코어링
- S4: total_score 내림차순 정렬

Example:
  go run ./cmd/vctrank pipeline all
  go run ./cmd/vctrank pipeline run international --year 2024`,
}

var (
	pipelineRunCmd = &cobra.Command{
		Use:   "run <league>",
		Short: "한 리그 파이프라인 실행",
		Long: `한 리그를 지정 단계부터 RANKED까지 실행합니다.
각 단계 결과는 DATA_DIR에 저장되므로 --from으로 재개할 수 있습니다.

Flags:
  --from    첫 계산 단계 (role_tagged|stat_enriched|scored|ranked, 기본: role_tagged)
  --year    배치 점수 기준 연도 (기본: CURRENT_YEAR 또는 올해)

Example:
  go run ./cmd/vctrank pipeline run challengers
  go run ./cmd/vctrank pipeline run gamechangers --from scored --year 2024`,
		Args: cobra.ExactArgs(1),
		RunE: runPipeline,
	}

	pipelineAllCmd = &cobra.Command{
		Use:   "all",
		Short: "모든 리그 실행 후 통합 랭킹 생성",
		Long: `igls.json을 비우고, 원본 로스터가 있는 리그를 우선순위 순서로 실행한 뒤
players_scored_combined.json을 생성합니다. 한 리그가 실패해도 나머지는 계속 진행합니다.

Flags:
  --year    배치 점수 기준 연도 (기본: CURRENT_YEAR 또는 올해)
  --filter  S1 전에 상위 리그 선수를 하위 리그 원본에서 제거
            (filtered-{league}.json, filter-report-{league}.json 기록)

Example:
  go run ./cmd/vctrank pipeline all --year 2024
  go run ./cmd/vctrank pipeline all --filter`,
		Args: cobra.NoArgs,
		RunE: runPipelineAll,
	}

	// Flags
	pipelineFrom   string
	pipelineYear   int
	pipelineFilter bool
)

func init() {
	rootCmd.AddCommand(pipelineCmd)
	pipelineCmd.AddCommand(pipelineRunCmd)
	pipelineCmd.AddCommand(pipelineAllCmd)

	// Flags
	pipelineRunCmd.Flags().StringVar(&pipelineFrom, "from", "", "first stage to compute (role_tagged|stat_enriched|scored|ranked)")
	pipelineRunCmd.Flags().IntVar(&pipelineYear, "year", 0, "placement scoring year (default CURRENT_YEAR or this year)")
	pipelineAllCmd.Flags().IntVar(&pipelineYear, "year", 0, "placement scoring year (default CURRENT_YEAR or this year)")
	pipelineAllCmd.Flags().BoolVar(&pipelineFilter, "filter", false, "remove higher-priority league players from each raw roster before S1")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	category, err := contracts.ParseCategory(args[0])
	if err != nil {
		return err
	}

	var from contracts.Stage
	if pipelineFrom != "" {
		from, err = contracts.ParseStage(pipelineFrom)
		if err != nil {
			return err
		}
	}

	return runLeague(cmd, category, from)
}

// runLeague is shared by pipeline run and score
func runLeague(cmd *cobra.Command, category contracts.Category, from contracts.Stage) error {
	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer d.close()

	runConfig := brain.RunConfig{
		Category:    category,
		CurrentYear: resolveYear(d),
		FromStage:   from,
		RunID:       brain.GenerateRunID(),
	}

	PrintHeader("VCT Pipeline", []Field{
		{"Run ID", runConfig.RunID},
		{"League", string(category)},
		{"Year", fmt.Sprintf("%d", runConfig.CurrentYear)},
		{"From", stageLabel(from)},
		{"Data", d.cfg.DataDir},
	})

	result, err := d.orchestrator.Run(cmd.Context(), runConfig)
	if result != nil {
		printRunResult(result)
	}
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	return nil
}

func runPipelineAll(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer d.close()

	runConfig := brain.RunAllConfig{
		CurrentYear: resolveYear(d),
		RunID:       brain.GenerateRunID(),
		Filter:      pipelineFilter,
	}

	PrintHeader("VCT Pipeline (all leagues)", []Field{
		{"Run ID", runConfig.RunID},
		{"Year", fmt.Sprintf("%d", runConfig.CurrentYear)},
		{"Filter", fmt.Sprintf("%t", runConfig.Filter)},
		{"Data", d.cfg.DataDir},
	})

	results, err := d.orchestrator.RunAll(cmd.Context(), runConfig)
	for _, result := range results {
		printRunResult(result)
	}
	if err != nil {
		PrintError(err.Error())
		return fmt.Errorf("pipeline all finished with errors")
	}

	PrintSuccess(fmt.Sprintf("Combined ranking written to %s", d.cfg.DataDir))
	return nil
}

// resolveYear pins the placement year once per invocation
func resolveYear(d *deps) int {
	if pipelineYear > 0 {
		return pipelineYear
	}
	return d.cfg.Year(time.Now())
}

func stageLabel(from contracts.Stage) string {
	if from == "" {
		return string(contracts.StageRoleTagged)
	}
	return string(from)
}

func printRunResult(result *brain.RunResult) {
	fmt.Println()
	if result.Success {
		PrintSuccess(fmt.Sprintf("%s completed", result.Category))
	} else {
		PrintError(fmt.Sprintf("%s failed: %v", result.Category, result.Error))
	}

	PrintKeyValue("Run ID", result.RunID, 10)
	PrintKeyValue("Players", fmt.Sprintf("%d", result.Players), 10)
	PrintKeyValue("Duration", fmt.Sprintf("%.2fs", result.Duration.Seconds()), 10)
	if result.ConfigHash != "" {
		PrintKeyValue("Config", result.ConfigHash[:12], 10)
	}
	if len(result.IGLs) > 0 {
		PrintKeyValue("IGLs", fmt.Sprintf("%d", len(result.IGLs)), 10)
	}

	if len(result.Stages) == 0 {
		return
	}
	fmt.Println()
	widths := []int{16, 7, 7, 9, 8, 10}
	PrintTableHeader([]string{"Stage", "Input", "Output", "Failures", "Skipped", "Duration"}, widths)
	for _, s := range result.Stages {
		PrintTableRow([]string{
			fmt.Sprintf("%s %s", s.Stage.ShortName(), s.Stage),
			fmt.Sprintf("%d", s.InputCount),
			fmt.Sprintf("%d", s.OutputCount),
			fmt.Sprintf("%d", s.Failures),
			fmt.Sprintf("%d", s.Skipped),
			fmt.Sprintf("%dms", s.Duration),
		}, widths)
	}
}
