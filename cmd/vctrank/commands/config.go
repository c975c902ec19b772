package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wonny/vctrank/internal/scoringconfig"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "스코어링 설정 확인",
}

var (
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "현재 스코어링 설정과 해시 출력",
		Long: `SCORING_CONFIG(또는 내장 기본값)를 로드·검증하고 해시, 리그 우선순위,
대회 티어 테이블을 출력합니다. --yaml 이면 전체 설정을 YAML로 출력합니다.

Example:
  go run ./cmd/vctrank config show
  go run ./cmd/vctrank config show --yaml`,
		Args: cobra.NoArgs,
		RunE: runConfigShow,
	}

	configShowYAML bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&configShowYAML, "yaml", false, "print the full config as YAML")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scoring, err := loadScoring(cfg)
	if err != nil {
		return err
	}

	if configShowYAML {
		out, err := yaml.Marshal(scoring)
		if err != nil {
			return fmt.Errorf("encode scoring config: %w", err)
		}
		fmt.Print(string(out))
		return nil
	}

	hash, err := scoringconfig.Hash(scoring)
	if err != nil {
		return err
	}

	source := cfg.ScoringConfigPath
	if source == "" {
		source = "(embedded default)"
	}
	priority := make([]string, len(scoring.Leagues.Priority))
	for i, c := range scoring.Leagues.Priority {
		priority[i] = string(c)
	}

	PrintHeader("Scoring config", []Field{
		{"Source", source},
		{"Config ID", scoring.Meta.ConfigID},
		{"Version", scoring.Meta.Version},
		{"Hash", hash},
		{"Priority", strings.Join(priority, " > ")},
		{"IGL bonus", fmt.Sprintf("+%d (max %d)", scoring.Rating.IGLBonus, scoring.Rating.MaxScore)},
	})

	fmt.Println("\nRoles:")
	for _, role := range scoring.Roles {
		PrintKeyValue(role.Name, strings.Join(role.Agents, ", "), 12)
	}

	fmt.Println("\nPlacement tiers (first match wins):")
	widths := []int{20, 7, 7, 7}
	PrintTableHeader([]string{"Tier", "1st", "Top", "Other"}, widths)
	for _, tier := range scoring.Placement.Tiers {
		PrintTableRow([]string{tier.Name, points(tier.Points.First), points(tier.Points.Top), points(tier.Points.Other)}, widths)
	}
	return nil
}

func points(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}

func fileExists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
