package selection

import (
	"github.com/wonny/vctrank/internal/contracts"
)

// Combine concatenates the rosters in the given order and stable-sorts the
// result by descending total score. It does not deduplicate: identity keys
// found in more than one roster are returned so the caller can report them.
func Combine(rosters ...*contracts.Roster) (*contracts.Roster, []string) {
	combined := &contracts.Roster{
		Stage:   contracts.StageRanked,
		Players: make([]contracts.Player, 0),
	}

	seen := make(map[string]int)
	duplicates := make([]string, 0)
	for _, r := range rosters {
		for _, p := range r.Players {
			seen[p.Link]++
			if seen[p.Link] == 2 {
				duplicates = append(duplicates, p.Link)
			}
			combined.Players = append(combined.Players, p)
		}
	}

	SortByTotal(combined.Players)
	return combined, duplicates
}
