package contracts

import json "github.com/goccy/go-json"

// RemovedPlayer is one entry of a filter report
type RemovedPlayer struct {
	Name string `json:"name"`
	Link string `json:"link"`
	Team string `json:"team"`
}

// FilterReport records which higher-priority league caused each removal
type FilterReport struct {
	Target        Category                     `json:"target"`
	OriginalCount int                          `json:"original_count"`
	FilteredCount int                          `json:"filtered_count"`
	Removed       map[Category][]RemovedPlayer `json:"-"`
}

// RemovedCount returns the total number of removed players
func (r *FilterReport) RemovedCount() int {
	n := 0
	for _, players := range r.Removed {
		n += len(players)
	}
	return n
}

// RemovedBy returns the players removed because of the given league
func (r *FilterReport) RemovedBy(category Category) []RemovedPlayer {
	return r.Removed[category]
}

// ReportKey is the report field name for a causing league ("removed_international")
func ReportKey(category Category) string {
	return "removed_" + string(category)
}

// MarshalJSON flattens the removal groups into removed_{category} keys
func (r FilterReport) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"target":         r.Target,
		"original_count": r.OriginalCount,
		"filtered_count": r.FilteredCount,
		"removed_count":  r.RemovedCount(),
	}

	for c, players := range r.Removed {
		if players == nil {
			players = []RemovedPlayer{}
		}
		out[ReportKey(c)] = players
	}
	return json.Marshal(out)
}
