package contracts

import (
	"fmt"
	"strings"
)

// League is the league tag written on every player record
type League string

const (
	LeagueInternational League = "VCT-International"
	LeagueGameChangers  League = "VCT-Game-Changers"
	LeagueChallengers   League = "VCT-Challengers"
)

// Category is the short league key used in file names and reports
// ⭐ SSOT: 리그 식별자는 여기서만 정의
type Category string

const (
	CategoryInternational Category = "international"
	CategoryGameChangers  Category = "gamechangers"
	CategoryChallengers   Category = "challengers"
)

// AllCategories returns the fixed league set in default priority order
func AllCategories() []Category {
	return []Category{
		CategoryInternational,
		CategoryGameChangers,
		CategoryChallengers,
	}
}

// League returns the league tag for the category
func (c Category) League() League {
	switch c {
	case CategoryInternational:
		return LeagueInternational
	case CategoryGameChangers:
		return LeagueGameChangers
	case CategoryChallengers:
		return LeagueChallengers
	default:
		return ""
	}
}

// IsValid checks that the category belongs to the fixed set
func (c Category) IsValid() bool {
	return c.League() != ""
}

// Category returns the category key for a league tag
func (l League) Category() Category {
	for _, c := range AllCategories() {
		if c.League() == l {
			return c
		}
	}
	return ""
}

// ParseCategory accepts a category key or a league tag
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if c := Category(strings.ToLower(s)); c.IsValid() {
		return c, nil
	}
	if c := League(s).Category(); c != "" {
		return c, nil
	}
	return "", fmt.Errorf("unknown league %q (valid: international, gamechangers, challengers)", s)
}
