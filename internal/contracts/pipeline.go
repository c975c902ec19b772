package contracts

import (
	"fmt"
	"strings"
)

// Pipeline Stage 정의 (SSOT)
// 모든 로그, 스테이지 파일, 실행 결과에서 이 상수를 사용해야 함
//
// 파이프라인 흐름 (리그별, 단방향):
//   RAW → ROLE_TAGGED → STAT_ENRICHED → SCORED → RANKED
//   S0      S1             S2              S3       S4

// Stage represents a pipeline stage
type Stage string

const (
	// StageRaw S0: 원본 로스터 (외부 소스)
	// 위치: internal/s0_roster/
	StageRaw Stage = "RAW"

	// StageRoleTagged S1: 리그 태그 + IGL 플래그
	// 위치: internal/s1_roles/
	StageRoleTagged Stage = "ROLE_TAGGED"

	// StageStatEnriched S2: 요원별 스탯 테이블
	// 위치: internal/s2_stats/
	StageStatEnriched Stage = "STAT_ENRICHED"

	// StageScored S3: rating / flexibility / experience / total
	// 위치: internal/s3_scoring/
	StageScored Stage = "SCORED"

	// StageRanked S4: total 내림차순 안정 정렬 (종료 상태)
	// 위치: internal/selection/ranker.go
	StageRanked Stage = "RANKED"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// ShortName returns abbreviated stage name (e.g., "S0", "S1")
func (s Stage) ShortName() string {
	switch s {
	case StageRaw:
		return "S0"
	case StageRoleTagged:
		return "S1"
	case StageStatEnriched:
		return "S2"
	case StageScored:
		return "S3"
	case StageRanked:
		return "S4"
	default:
		return "UNKNOWN"
	}
}

// AllStages returns all pipeline stages in order
func AllStages() []Stage {
	return []Stage{
		StageRaw,
		StageRoleTagged,
		StageStatEnriched,
		StageScored,
		StageRanked,
	}
}

// Index returns the position of the stage in AllStages, or -1
func (s Stage) Index() int {
	for i, stage := range AllStages() {
		if stage == s {
			return i
		}
	}
	return -1
}

// Previous returns the stage whose output feeds s. RAW has no predecessor.
func (s Stage) Previous() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return "", false
	}
	return AllStages()[i-1], true
}

// IsValidStage checks if a stage string is valid
func IsValidStage(s string) bool {
	return Stage(s).Index() >= 0
}

// ParseStage accepts either the canonical name ("STAT_ENRICHED") or the CLI
// spelling ("stat_enriched", "stat-enriched").
func ParseStage(s string) (Stage, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if IsValidStage(normalized) {
		return Stage(normalized), nil
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// StageResult represents the result of one stage over one roster
type StageResult struct {
	Stage       Stage `json:"stage"`
	InputCount  int   `json:"input_count"`
	OutputCount int   `json:"output_count"` // 스테이지 산출물이 채워진 선수 수
	Failures    int   `json:"failures"`     // 선수 단위 FetchFailure/ParseFailure
	Skipped     int   `json:"skipped"`      // MissingPrecondition
	Duration    int64 `json:"duration_ms"`
}
