package contracts

import (
	"fmt"
	"time"
)

// Roster is one league's player list plus its league tag and the stage it reached
// ⭐ SSOT: 스테이지 간 전달 단위
type Roster struct {
	League    League    `json:"league,omitempty"`
	Category  Category  `json:"category,omitempty"`
	Stage     Stage     `json:"stage,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
	Players   []Player  `json:"players"`
}

// NewRoster creates an empty roster for the category
func NewRoster(category Category, players []Player) *Roster {
	return &Roster{
		League:   category.League(),
		Category: category,
		Stage:    StageRaw,
		Players:  players,
	}
}

// Len returns the number of players
func (r *Roster) Len() int {
	return len(r.Players)
}

// Links returns the identity key set of the roster
func (r *Roster) Links() map[string]struct{} {
	links := make(map[string]struct{}, len(r.Players))
	for _, p := range r.Players {
		links[p.Link] = struct{}{}
	}
	return links
}

// ScoredCount returns how many players carry a total score
func (r *Roster) ScoredCount() int {
	n := 0
	for i := range r.Players {
		if r.Players[i].HasTotal() {
			n++
		}
	}
	return n
}

// Validate checks the roster-level invariants: a known league and
// non-empty, unique identity keys
func (r *Roster) Validate() error {
	if !r.Category.IsValid() {
		return fmt.Errorf("roster has unknown category %q", r.Category)
	}

	seen := make(map[string]int, len(r.Players))
	for i, p := range r.Players {
		if p.Link == "" {
			return fmt.Errorf("player #%d (%s) has empty player_link", i, p.Name)
		}
		if j, dup := seen[p.Link]; dup {
			return fmt.Errorf("players #%d and #%d share player_link %s", j, i, p.Link)
		}
		seen[p.Link] = i
	}
	return nil
}

// IGLs returns the IGL entries of the roster in roster order
func (r *Roster) IGLs() []IGLEntry {
	entries := make([]IGLEntry, 0)
	for _, p := range r.Players {
		if p.IsIGL() {
			entries = append(entries, IGLEntry{Name: p.Name, Link: p.Link, League: r.League})
		}
	}
	return entries
}
