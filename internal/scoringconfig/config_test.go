package scoringconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wonny/vctrank/internal/contracts"
)

func TestLoadDefault(t *testing.T) {
	cfg, yamlData, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	if cfg.Meta.ConfigID != "vct_scoring" {
		t.Errorf("expected config_id=vct_scoring, got %s", cfg.Meta.ConfigID)
	}
	if len(cfg.Roles) != 4 {
		t.Errorf("expected 4 roles, got %d", len(cfg.Roles))
	}
	if cfg.Rating.IGLBonus != 5 || cfg.Rating.MaxScore != 30 {
		t.Errorf("unexpected rating params: %+v", cfg.Rating)
	}

	want := []contracts.Category{contracts.CategoryInternational, contracts.CategoryGameChangers, contracts.CategoryChallengers}
	for i, c := range want {
		if cfg.Leagues.Priority[i] != c {
			t.Errorf("priority[%d]: expected %s, got %s", i, c, cfg.Leagues.Priority[i])
		}
	}

	// 해시 생성
	hash, err := Hash(cfg)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(hash))
	}

	// 동일 설정 → 동일 해시
	cfg2, _, _ := LoadDefault()
	hash2, _ := Hash(cfg2)
	if hash != hash2 {
		t.Error("hash not deterministic")
	}

	t.Logf("config hash: %s", hash)
	t.Logf("yaml size: %d bytes", len(yamlData))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, defaultYAML, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Meta.Version == "" {
		t.Error("expected version")
	}

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_UnknownField(t *testing.T) {
	data := strings.Replace(string(defaultYAML), "igl_bonus: 5", "igl_bonus: 5\n  igl_bonsu: 3", 1)
	if _, err := Parse([]byte(data)); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing config id", func(c *Config) { c.Meta.ConfigID = "" }, "meta.config_id"},
		{"negative bonus", func(c *Config) { c.Rating.IGLBonus = -1 }, "rating.igl_bonus"},
		{"zero scale", func(c *Config) { c.Flexibility.RatingScale = 0 }, "flexibility.rating_scale"},
		{"agent in two roles", func(c *Config) {
			c.Roles[1].Agents = append(c.Roles[1].Agents, "jett")
		}, "roles[1].agents"},
		{"empty role", func(c *Config) { c.Roles[0].Agents = nil }, "roles[0].agents"},
		{"empty keyword group", func(c *Config) {
			c.Placement.Tiers[0].MatchAny = append(c.Placement.Tiers[0].MatchAny, []string{})
		}, "placement.tiers[0].match_any[2]"},
		{"negative points", func(c *Config) {
			n := -1
			c.Placement.Tiers[1].Points.Other = &n
		}, "placement.tiers[1].points.other"},
		{"duplicate league", func(c *Config) {
			c.Leagues.Priority = []contracts.Category{"international", "international", "challengers"}
		}, "leagues.priority"},
		{"missing league", func(c *Config) {
			c.Leagues.Priority = c.Leagues.Priority[:2]
		}, "leagues.priority"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _, err := LoadDefault()
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(cfg)

			err = Validate(cfg)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %s, got %s (%s)", tc.field, verr.Field, verr.Message)
			}
		})
	}
}

func TestTierMatches(t *testing.T) {
	cfg, _, _ := LoadDefault()
	tiers := cfg.Placement.Tiers

	tests := []struct {
		tier       int
		tournament string
		want       bool
	}{
		{0, "Valorant Champions 2024", true},
		{0, "Champions Tour 2024: Masters Madrid", true},
		{0, "Champions Tour 2024: Americas Stage 1", false},
		{1, "Champions Tour 2024: EMEA Stage 2Playoffs", true},
		{2, "Champions Tour 2024: EMEA Stage 2", true},
		{3, "Challengers League 2024 North America", true},
		{4, "Game Changers Championship Berlin", true},
		{4, "Game Changers 2024 EMEA", false},
	}

	for _, tc := range tests {
		if got := tiers[tc.tier].Matches(tc.tournament); got != tc.want {
			t.Errorf("%s.Matches(%q) = %v, want %v", tiers[tc.tier].Name, tc.tournament, got, tc.want)
		}
	}
}

func TestRoleIndex(t *testing.T) {
	cfg, _, _ := LoadDefault()
	idx := cfg.RoleIndex()

	if idx["jett"] != "Duelist" {
		t.Errorf("expected jett → Duelist, got %q", idx["jett"])
	}
	if idx["kayo"] != "Initiator" {
		t.Errorf("expected kayo → Initiator, got %q", idx["kayo"])
	}
	if _, ok := idx["tejo"]; ok {
		t.Error("unexpected role for unknown agent")
	}
}

func TestNewSnapshot(t *testing.T) {
	cfg, _, _ := LoadDefault()

	snapshot, err := NewSnapshot(cfg, "run_test")
	if err != nil {
		t.Fatalf("NewSnapshot failed: %v", err)
	}
	if snapshot.RunID != "run_test" {
		t.Errorf("expected run_id=run_test, got %s", snapshot.RunID)
	}
	if len(snapshot.ConfigHash) != 64 {
		t.Errorf("expected 64 char hash, got %d", len(snapshot.ConfigHash))
	}
}
