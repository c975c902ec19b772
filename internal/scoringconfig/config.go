package scoringconfig

import (
	"strings"
	"time"

	"github.com/wonny/vctrank/internal/contracts"
)

// Config는 선수 스코어링의 전체 정적 설정
type Config struct {
	Meta        Meta        `yaml:"meta" json:"meta"`
	Rating      Rating      `yaml:"rating" json:"rating"`
	Flexibility Flexibility `yaml:"flexibility" json:"flexibility"`
	Roles       []Role      `yaml:"roles" json:"roles"`
	Placement   Placement   `yaml:"placement" json:"placement"`
	Leagues     Leagues     `yaml:"leagues" json:"leagues"`
}

// Meta 메타 정보
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
}

// Rating 레이팅 커브 외부 파라미터 (밴드 자체는 코드에 고정)
type Rating struct {
	IGLBonus int `yaml:"igl_bonus" json:"igl_bonus"`
	MaxScore int `yaml:"max_score" json:"max_score"`
}

// Flexibility 평균 레이팅 항: (avg / rating_scale) * rating_weight
type Flexibility struct {
	RatingScale  float64 `yaml:"rating_scale" json:"rating_scale"`
	RatingWeight float64 `yaml:"rating_weight" json:"rating_weight"`
}

// Role 역할군과 소속 요원
type Role struct {
	Name   string   `yaml:"name" json:"name"`
	Agents []string `yaml:"agents" json:"agents"`
}

// Placement 대회 티어 테이블
type Placement struct {
	TopPlacements []string `yaml:"top_placements" json:"top_placements"`
	Tiers         []Tier   `yaml:"tiers" json:"tiers"`
}

// Tier matches when every keyword of any one group is in the tournament name
type Tier struct {
	Name     string     `yaml:"name" json:"name"`
	MatchAny [][]string `yaml:"match_any" json:"match_any"`
	Points   TierPoints `yaml:"points" json:"points"`
}

// TierPoints nil 항목은 다음 항목으로 넘어가고, 모두 nil 이면 0점
type TierPoints struct {
	First *int `yaml:"first,omitempty" json:"first,omitempty"`
	Top   *int `yaml:"top,omitempty" json:"top,omitempty"`
	Other *int `yaml:"other,omitempty" json:"other,omitempty"`
}

// Leagues 리그 중복 제거 우선순위 (앞이 높음)
type Leagues struct {
	Priority []contracts.Category `yaml:"priority" json:"priority"`
}

// Matches reports whether the tournament name belongs to the tier
func (t *Tier) Matches(tournament string) bool {
	for _, group := range t.MatchAny {
		if len(group) == 0 {
			continue
		}
		all := true
		for _, kw := range group {
			if !strings.Contains(tournament, kw) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// RoleIndex returns lower-cased agent name → role name
func (c *Config) RoleIndex() map[string]string {
	idx := make(map[string]string)
	for _, role := range c.Roles {
		for _, agent := range role.Agents {
			idx[strings.ToLower(agent)] = role.Name
		}
	}
	return idx
}

// IsTopPlacement reports whether the placement counts as a top finish
func (p *Placement) IsTopPlacement(placement string) bool {
	for _, top := range p.TopPlacements {
		if placement == top {
			return true
		}
	}
	return false
}

// Snapshot 실행 시점의 설정 식별 정보 (재현성용)
type Snapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigID   string    `json:"config_id"`
	Version    string    `json:"version"`
	RunID      string    `json:"run_id"`
	CreatedAt  time.Time `json:"created_at"`
}
