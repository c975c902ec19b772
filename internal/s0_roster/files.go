package s0_roster

import (
	"fmt"

	"github.com/wonny/vctrank/internal/contracts"
)

// File names under the data directory
// ⭐ SSOT: 스테이지 파일 이름 규칙은 여기서만
const (
	IGLFile      = "igls.json"
	CombinedFile = "players_scored_combined.json"
)

// StageFile returns the file name holding a category's roster at a stage
func StageFile(category contracts.Category, stage contracts.Stage) string {
	switch stage {
	case contracts.StageRaw:
		return fmt.Sprintf("players_%s.json", category)
	case contracts.StageRoleTagged:
		return fmt.Sprintf("players_%s.role_tagged.json", category)
	case contracts.StageStatEnriched:
		return fmt.Sprintf("players_%s.stat_enriched.json", category)
	case contracts.StageScored:
		return fmt.Sprintf("players_%s.scored.json", category)
	case contracts.StageRanked:
		return fmt.Sprintf("players_scored_%s.json", category)
	default:
		return ""
	}
}

// FilteredFile returns the deduplicated roster file of a category
func FilteredFile(category contracts.Category) string {
	return fmt.Sprintf("filtered-%s.json", category)
}

// FilterReportFile returns the removal report file of a category
func FilterReportFile(category contracts.Category) string {
	return fmt.Sprintf("filter-report-%s.json", category)
}
