package contracts

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// RoleIGL marks the designated in-game leader
const RoleIGL = "igl"

// Player is one roster entry, enriched stage by stage
// ⭐ SSOT: player_link 가 유일한 식별/병합 키
type Player struct {
	Link         string    `json:"player_link"`
	Name         string    `json:"player_name"`
	TeamInitials string    `json:"player_team_initials"`
	League       League    `json:"league,omitempty"`
	Role         string    `json:"role"`
	Rating       StatValue `json:"rating"`

	// 요원별 스탯 (발견 순서 유지)
	Agents []AgentStat `json:"agents,omitempty"`

	// Derived scores, absent until computed
	RatingScore      *int     `json:"rating_score,omitempty"`
	AgentFlexibility *float64 `json:"agent_flexibility,omitempty"`
	Experience       *float64 `json:"experience,omitempty"`
	TotalScore       *float64 `json:"total_score,omitempty"`

	// Extra keeps keys this program does not know so re-saved files still carry them
	Extra map[string]json.RawMessage `json:"-"`
}

type playerFields Player

var playerKeys = map[string]bool{
	"player_link": true, "player_name": true, "player_team_initials": true,
	"league": true, "role": true, "rating": true, "agents": true,
	"rating_score": true, "agent_flexibility": true, "experience": true, "total_score": true,
}

// UnmarshalJSON decodes the known fields and collects the rest into Extra
func (p *Player) UnmarshalJSON(data []byte) error {
	var fields playerFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for key := range all {
		if playerKeys[key] {
			delete(all, key)
		}
	}
	if len(all) == 0 {
		all = nil
	}

	*p = Player(fields)
	p.Extra = all
	return nil
}

// MarshalJSON writes the known fields followed by Extra in key order
func (p Player) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(playerFields(p))
	if err != nil || len(p.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(p.Extra))
	for key := range p.Extra {
		if !playerKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for _, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(p.Extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsIGL reports the leadership flag
func (p *Player) IsIGL() bool {
	return strings.EqualFold(p.Role, RoleIGL)
}

// HasTotal reports whether all three component scores were computed
func (p *Player) HasTotal() bool {
	return p.TotalScore != nil
}

// SortScore is the total score for ordering only; missing totals sort as 0
func (p *Player) SortScore() float64 {
	if p.TotalScore == nil {
		return 0
	}
	return *p.TotalScore
}

// StatValue is a stat cell kept as text. Source files carry it either as a
// JSON string or a bare number; both decode to the same text.
type StatValue string

// UnmarshalJSON accepts strings, numbers and null
func (v *StatValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StatValue(strings.TrimSpace(s))
		return nil
	default:
		if _, err := strconv.ParseFloat(string(data), 64); err != nil {
			return fmt.Errorf("stat value must be string or number, got %s", data)
		}
		*v = StatValue(data)
		return nil
	}
}

// Float parses the value. Empty and malformed values are ParseErrors.
func (v StatValue) Float(field string) (float64, error) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, &ParseError{Field: field, Value: s, Err: ErrMissingPrecondition}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Field: field, Value: s, Err: err}
	}
	return f, nil
}

// AgentStat is one row of the per-agent statistics table
type AgentStat struct {
	Agent string `json:"-"`
	AgentFields
}

// AgentFields is the fixed 16-field stat layout stored under the agent name
type AgentFields struct {
	GamesPlayed int       `json:"games_played"`
	Rounds      StatValue `json:"rnd"`
	Rating      StatValue `json:"rating"`
	ACS         StatValue `json:"acs"`
	KD          StatValue `json:"kd"`
	ADR         StatValue `json:"adr"`
	KAST        StatValue `json:"kast"`
	KPR         StatValue `json:"kpr"`
	APR         StatValue `json:"apr"`
	FKPR        StatValue `json:"fkpr"`
	FDPR        StatValue `json:"fdpr"`
	Kills       StatValue `json:"k"`
	Deaths      StatValue `json:"d"`
	Assists     StatValue `json:"a"`
	FirstKills  StatValue `json:"fk"`
	FirstDeaths StatValue `json:"fd"`
}

// MarshalJSON writes the single-key object form {"jett": {...}}
func (a AgentStat) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]AgentFields{a.Agent: a.AgentFields})
}

// UnmarshalJSON reads the single-key object form {"jett": {...}}
func (a *AgentStat) UnmarshalJSON(data []byte) error {
	var m map[string]AgentFields
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return &SchemaError{File: "agents", Field: "agent entry", Message: fmt.Sprintf("expected exactly one agent key, got %d", len(m))}
	}
	for name, fields := range m {
		a.Agent = name
		a.AgentFields = fields
	}
	return nil
}

// IGLEntry is one line of igls.json
type IGLEntry struct {
	Name   string `json:"player_name"`
	Link   string `json:"player_link"`
	League League `json:"league"`
}

// EventPlacement is one row of a player's tournament placement history
type EventPlacement struct {
	Year       int    `json:"year"`
	Tournament string `json:"tournament"`
	Placement  string `json:"placement"`
}
