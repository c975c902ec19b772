package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir       string
	scoringConfig string
	env           string
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vctrank",
	Short: "VCT 선수 로스터 수집 · 스코어링 · 랭킹",
	Long: `vctrank Unified CLI

리그별 로스터 파일을 받아 IGL 태깅, 요원 스탯 수집, 스코어링, 랭킹까지
단방향 파이프라인으로 처리합니다.

RAW → ROLE_TAGGED → STAT_ENRICHED → SCORED → RANKED

Usage:
  go run ./cmd/vctrank [command]

Examples:
  go run ./cmd/vctrank pipeline all
  go run ./cmd/vctrank pipeline run challengers --from scored
  go run ./cmd/vctrank filter --target challengers
  go run ./cmd/vctrank status`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "stage file directory (default DATA_DIR or ./data)")
	rootCmd.PersistentFlags().StringVar(&scoringConfig, "scoring-config", "", "scoring config YAML (default SCORING_CONFIG or embedded)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production|test)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
