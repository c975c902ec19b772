package scoringconfig

import (
	"fmt"
	"strings"

	"github.com/wonny/vctrank/internal/contracts"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.ConfigID == "" {
		return ValidationError{"meta.config_id", "required"}
	}
	if cfg.Meta.Version == "" {
		return ValidationError{"meta.version", "required"}
	}

	// === Rating ===
	if cfg.Rating.IGLBonus < 0 {
		return ValidationError{"rating.igl_bonus", "must be >= 0"}
	}
	if cfg.Rating.MaxScore <= 0 {
		return ValidationError{"rating.max_score", "must be > 0"}
	}

	// === Flexibility ===
	if cfg.Flexibility.RatingScale <= 0 {
		return ValidationError{"flexibility.rating_scale", "must be > 0"}
	}
	if cfg.Flexibility.RatingWeight < 0 {
		return ValidationError{"flexibility.rating_weight", "must be >= 0"}
	}

	if err := validateRoles(cfg.Roles); err != nil {
		return err
	}
	if err := validatePlacement(&cfg.Placement); err != nil {
		return err
	}
	return validatePriority(cfg.Leagues.Priority)
}

// validateRoles: 요원은 하나의 역할군에만 속한다
func validateRoles(roles []Role) error {
	if len(roles) == 0 {
		return ValidationError{"roles", "at least one role required"}
	}

	owner := make(map[string]string)
	names := make(map[string]bool)
	for i, role := range roles {
		field := fmt.Sprintf("roles[%d]", i)
		if role.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if names[role.Name] {
			return ValidationError{field + ".name", fmt.Sprintf("duplicate role %q", role.Name)}
		}
		names[role.Name] = true

		if len(role.Agents) == 0 {
			return ValidationError{field + ".agents", "must not be empty"}
		}
		for _, agent := range role.Agents {
			key := strings.ToLower(strings.TrimSpace(agent))
			if key == "" {
				return ValidationError{field + ".agents", "empty agent name"}
			}
			if prev, ok := owner[key]; ok {
				return ValidationError{field + ".agents", fmt.Sprintf("agent %q already in role %q", agent, prev)}
			}
			owner[key] = role.Name
		}
	}
	return nil
}

func validatePlacement(p *Placement) error {
	if len(p.TopPlacements) == 0 {
		return ValidationError{"placement.top_placements", "must not be empty"}
	}
	if len(p.Tiers) == 0 {
		return ValidationError{"placement.tiers", "at least one tier required"}
	}

	for i, tier := range p.Tiers {
		field := fmt.Sprintf("placement.tiers[%d]", i)
		if tier.Name == "" {
			return ValidationError{field + ".name", "required"}
		}
		if len(tier.MatchAny) == 0 {
			return ValidationError{field + ".match_any", "at least one keyword group required"}
		}
		for j, group := range tier.MatchAny {
			if len(group) == 0 {
				return ValidationError{fmt.Sprintf("%s.match_any[%d]", field, j), "empty keyword group"}
			}
			for _, kw := range group {
				if strings.TrimSpace(kw) == "" {
					return ValidationError{fmt.Sprintf("%s.match_any[%d]", field, j), "empty keyword"}
				}
			}
		}
		for name, pts := range map[string]*int{"first": tier.Points.First, "top": tier.Points.Top, "other": tier.Points.Other} {
			if pts != nil && *pts < 0 {
				return ValidationError{field + ".points." + name, "must be >= 0"}
			}
		}
	}
	return nil
}

// validatePriority: 모든 리그가 정확히 한 번씩
func validatePriority(priority []contracts.Category) error {
	seen := make(map[contracts.Category]bool)
	for _, c := range priority {
		if !c.IsValid() {
			return ValidationError{"leagues.priority", fmt.Sprintf("unknown league %q", c)}
		}
		if seen[c] {
			return ValidationError{"leagues.priority", fmt.Sprintf("duplicate league %q", c)}
		}
		seen[c] = true
	}
	if len(seen) != len(contracts.AllCategories()) {
		return ValidationError{"leagues.priority", fmt.Sprintf("must list all %d leagues", len(contracts.AllCategories()))}
	}
	return nil
}
