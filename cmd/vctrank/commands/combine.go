package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// combineCmd represents the combine command
var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "리그별 랭킹을 하나로 합침",
	Long: `RANKED 단계까지 끝난 모든 리그 파일을 합쳐 total_score 순으로 정렬합니다.
여러 리그에 동시에 있는 선수는 제거하지 않고 경고만 출력합니다 (filter 먼저 실행 권장).

Example:
  go run ./cmd/vctrank combine
  go run ./cmd/vctrank combine --out combined.json --top 20`,
	Args: cobra.NoArgs,
	RunE: runCombine,
}

var (
	combineOut string
	combineTop int
)

func init() {
	rootCmd.AddCommand(combineCmd)

	combineCmd.Flags().StringVar(&combineOut, "out", "", "output file name inside the data dir (default players_scored_combined.json)")
	combineCmd.Flags().IntVar(&combineTop, "top", 10, "number of players to print")
}

func runCombine(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return fmt.Errorf("init orchestrator: %w", err)
	}
	defer d.close()

	combined, duplicates, err := d.orchestrator.Combine(cmd.Context(), combineOut)
	if err != nil {
		return fmt.Errorf("combine failed: %w", err)
	}

	PrintHeader("Combined ranking", []Field{
		{"Players", fmt.Sprintf("%d", combined.Len())},
		{"Duplicates", fmt.Sprintf("%d", len(duplicates))},
	})

	widths := []int{4, 20, 6, 20, 8}
	PrintTableHeader([]string{"#", "Player", "Team", "League", "Total"}, widths)
	for i, p := range combined.Players {
		if i >= combineTop {
			break
		}
		PrintTableRow([]string{
			fmt.Sprintf("%d", i+1),
			p.Name,
			p.TeamInitials,
			string(p.League),
			fmt.Sprintf("%.2f", p.SortScore()),
		}, widths)
	}

	if len(duplicates) > 0 {
		PrintWarning(fmt.Sprintf("%d players appear in more than one league", len(duplicates)))
		PrintList(duplicates)
	}
	return nil
}
