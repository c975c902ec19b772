package selection

import (
	"fmt"

	"github.com/wonny/vctrank/internal/contracts"
)

// Filter removes from target every player whose identity key appears in a
// higher-priority roster. higher must be in priority order; a removal is
// attributed to the first league that contains the key. Kept players
// retain their relative order.
// ⭐ SSOT: 리그 간 중복 제거는 여기서만
func Filter(target *contracts.Roster, higher []*contracts.Roster) (*contracts.Roster, *contracts.FilterReport) {
	sets := make([]map[string]struct{}, len(higher))
	report := &contracts.FilterReport{
		Target:        target.Category,
		OriginalCount: len(target.Players),
		Removed:       make(map[contracts.Category][]contracts.RemovedPlayer, len(higher)),
	}
	for i, h := range higher {
		sets[i] = h.Links()
		report.Removed[h.Category] = []contracts.RemovedPlayer{}
	}

	kept := make([]contracts.Player, 0, len(target.Players))
	for _, p := range target.Players {
		removed := false
		for i, set := range sets {
			if _, ok := set[p.Link]; ok {
				cat := higher[i].Category
				report.Removed[cat] = append(report.Removed[cat], contracts.RemovedPlayer{
					Name: p.Name,
					Link: p.Link,
					Team: p.TeamInitials,
				})
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, p)
		}
	}
	report.FilteredCount = len(kept)

	out := *target
	out.Players = kept
	return &out, report
}

// FilterByPriority deduplicates the target league against every league
// ranked above it in priority
func FilterByPriority(rosters map[contracts.Category]*contracts.Roster, priority []contracts.Category, target contracts.Category) (*contracts.Roster, *contracts.FilterReport, error) {
	targetRoster, ok := rosters[target]
	if !ok {
		return nil, nil, fmt.Errorf("no roster for target league %s", target)
	}

	higher := make([]*contracts.Roster, 0, len(priority))
	for _, c := range priority {
		if c == target {
			break
		}
		r, ok := rosters[c]
		if !ok {
			return nil, nil, fmt.Errorf("no roster for higher-priority league %s", c)
		}
		higher = append(higher, r)
	}

	filtered, report := Filter(targetRoster, higher)
	return filtered, report, nil
}
