package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/vctrank/internal/contracts"
)

// scoreCmd re-scores a league from its STAT_ENRICHED file
var scoreCmd = &cobra.Command{
	Use:   "score <league>",
	Short: "스탯 수집 이후부터 재계산 (pipeline run --from scored)",
	Long: `저장된 STAT_ENRICHED 파일에서 스코어링과 랭킹만 다시 실행합니다.
스코어링 설정을 바꾼 뒤 스탯을 다시 긁지 않고 결과를 갱신할 때 사용합니다.

Example:
  go run ./cmd/vctrank score international --year 2024`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := contracts.ParseCategory(args[0])
		if err != nil {
			return err
		}
		return runLeague(cmd, category, contracts.StageScored)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().IntVar(&pipelineYear, "year", 0, "placement scoring year (default CURRENT_YEAR or this year)")
}
