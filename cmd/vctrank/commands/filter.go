package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/vctrank/internal/brain"
	"github.com/wonny/vctrank/internal/contracts"
)

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "상위 리그 선수 중복 제거",
	Long: `대상 리그에서 우선순위가 더 높은 리그에 이미 있는 선수를 제거합니다.
결과는 filtered-{league}.json, 제거 내역은 filter-report-{league}.json 에 저장됩니다.
파이프라인에 반영하려면 pipeline all --filter 를 사용하세요.

Flags:
  --target   대상 리그 (기본: challengers)
  --stage    비교할 스테이지 파일 (기본: raw)
  --out      결과 파일 이름 (기본: filtered-{league}.json)

Example:
  go run ./cmd/vctrank filter
  go run ./cmd/vctrank filter --target gamechangers --stage ranked`,
	Args: cobra.NoArgs,
	RunE: runFilter,
}

var (
	filterTarget string
	filterStage  string
	filterOut    string
)

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVar(&filterTarget, "target", string(contracts.CategoryChallengers), "league to deduplicate")
	filterCmd.Flags().StringVar(&filterStage, "stage", "raw", "stage files to compare")
	filterCmd.Flags().StringVar(&filterOut, "out", "", "output file name inside the data dir")
}

func runFilter(cmd *cobra.Command, args []string) error {
	target, err := contracts.ParseCategory(filterTarget)
	if err != nil {
		return err
	}
	stage, err := contracts.ParseStage(filterStage)
	if err != nil {
		return err
	}

	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer d.close()

	_, report, err := d.orchestrator.Filter(cmd.Context(), brain.FilterConfig{
		Target: target,
		Source: stage,
		Output: filterOut,
	})
	if err != nil {
		return fmt.Errorf("filter failed: %w", err)
	}

	PrintHeader("Cross-league filter", []Field{
		{"Target", string(target)},
		{"Original", fmt.Sprintf("%d", report.OriginalCount)},
		{"Filtered", fmt.Sprintf("%d", report.FilteredCount)},
		{"Removed", fmt.Sprintf("%d", report.RemovedCount())},
	})
	for _, category := range d.orchestrator.Priority() {
		removed := report.RemovedBy(category)
		if len(removed) == 0 {
			continue
		}
		fmt.Printf("\n%s (%d)\n", contracts.ReportKey(category), len(removed))
		items := make([]string, len(removed))
		for i, p := range removed {
			items[i] = fmt.Sprintf("%s [%s] %s", p.Name, p.Team, p.Link)
		}
		PrintList(items)
	}
	return nil
}
