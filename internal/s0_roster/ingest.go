package s0_roster

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

// rosterFile is the on-disk shape; Players is a pointer so an absent key is detectable
type rosterFile struct {
	League    contracts.League    `json:"league,omitempty"`
	Category  contracts.Category  `json:"category,omitempty"`
	Stage     contracts.Stage     `json:"stage,omitempty"`
	UpdatedAt time.Time           `json:"updated_at"`
	Players   *[]contracts.Player `json:"players"`
}

// IngestReport summarizes what ingestion changed
type IngestReport struct {
	Players    int      `json:"players"`
	Duplicates []string `json:"duplicates,omitempty"` // 제거된 중복 player_link
}

// Decode parses a roster file and checks the container shape.
// A file without a "players" list or with an empty identity key is a *contracts.SchemaError.
func Decode(name string, data []byte) (*contracts.Roster, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &contracts.SchemaError{File: name, Field: "players", Message: "top-level value must be an object with a players list"}
	}

	var file rosterFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, &contracts.SchemaError{File: name, Field: "players", Message: err.Error()}
	}
	if file.Players == nil {
		return nil, &contracts.SchemaError{File: name, Field: "players"}
	}

	for i, p := range *file.Players {
		if p.Link == "" {
			return nil, &contracts.SchemaError{
				File:    name,
				Field:   fmt.Sprintf("players[%d].player_link", i),
				Message: fmt.Sprintf("empty identity key (player %q)", p.Name),
			}
		}
	}

	return &contracts.Roster{
		League:    file.League,
		Category:  file.Category,
		Stage:     file.Stage,
		UpdatedAt: file.UpdatedAt,
		Players:   *file.Players,
	}, nil
}

// Encode renders a roster in the persisted layout
func Encode(roster *contracts.Roster) ([]byte, error) {
	players := roster.Players
	if players == nil {
		players = []contracts.Player{}
	}
	return json.MarshalIndent(rosterFile{
		League:    roster.League,
		Category:  roster.Category,
		Stage:     roster.Stage,
		UpdatedAt: roster.UpdatedAt,
		Players:   &players,
	}, "", "  ")
}

// Ingest turns a decoded raw file into a RAW roster of the category:
// league tag set, in-roster duplicate identity keys dropped (first wins)
// ⭐ SSOT: S0 원본 로스터 검증
func Ingest(roster *contracts.Roster, category contracts.Category, log *logger.Logger) (*contracts.Roster, *IngestReport) {
	report := &IngestReport{}

	seen := make(map[string]bool, len(roster.Players))
	players := make([]contracts.Player, 0, len(roster.Players))
	for _, p := range roster.Players {
		if seen[p.Link] {
			report.Duplicates = append(report.Duplicates, p.Link)
			log.WithFields(map[string]interface{}{
				"player": p.Link,
				"league": category,
			}).Warn("Duplicate identity key in roster, keeping first")
			continue
		}
		seen[p.Link] = true
		players = append(players, p)
	}
	report.Players = len(players)

	return &contracts.Roster{
		League:    category.League(),
		Category:  category,
		Stage:     contracts.StageRaw,
		UpdatedAt: roster.UpdatedAt,
		Players:   players,
	}, report
}
