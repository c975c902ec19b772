package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/s0_roster"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "리그별 완료된 스테이지 파일 확인",
	Long: `DATA_DIR에서 리그별로 어떤 스테이지 파일이 있는지 보여줍니다.
pipeline run --from 으로 재개할 수 있는 지점을 확인할 때 사용합니다.

Example:
  go run ./cmd/vctrank status
  go run ./cmd/vctrank status --data-dir ./out`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer d.close()

	PrintHeader("Pipeline status", []Field{
		{"Data", d.cfg.DataDir},
	})

	widths := []int{14, 14, 60}
	PrintTableHeader([]string{"League", "Latest", "Stage files"}, widths)
	status := d.orchestrator.Status()
	for _, category := range d.orchestrator.Priority() {
		stages := status[category]
		latest := "-"
		names := make([]string, 0, len(stages))
		for _, s := range stages {
			latest = s.ShortName() + " " + string(s)
			names = append(names, s0_roster.StageFile(category, s))
		}
		files := "-"
		if len(names) > 0 {
			files = strings.Join(names, ", ")
		}
		PrintTableRow([]string{string(category), latest, files}, widths)
	}

	fmt.Println()
	for _, name := range []string{s0_roster.IGLFile, s0_roster.CombinedFile} {
		if fileExists(d.cfg.DataDir, name) {
			PrintSuccess(name)
		} else {
			PrintInfo(name + " (missing)")
		}
	}
	for _, category := range contracts.AllCategories() {
		if name := s0_roster.FilteredFile(category); fileExists(d.cfg.DataDir, name) {
			PrintSuccess(name)
		}
	}
	return nil
}
