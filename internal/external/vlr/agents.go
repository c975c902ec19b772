package vlr

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/vctrank/internal/contracts"
)

// agentRowCells: icon, usage "(N)", then 15 stat columns
const agentRowCells = 17

// AgentTable is the extracted agent stats table of one profile
type AgentTable struct {
	Agents    []contracts.AgentStat
	RowErrors []error // 파싱 실패로 건너뛴 행
}

// StatsURL returns the profile URL carrying the stats timespan
func (c *Client) StatsURL(playerLink string) string {
	return fmt.Sprintf("%s/?timespan=%s", strings.TrimRight(c.PageURL(playerLink), "/"), c.timespan)
}

// FetchAgentStats fetches the per-agent statistics of a player profile
// ⭐ SSOT: 요원별 스탯 수집은 이 함수에서만
func (c *Client) FetchAgentStats(ctx context.Context, playerLink string) (*AgentTable, error) {
	url := c.StatsURL(playerLink)

	table, err := c.Fetch(ctx, url, c.agentTableSelector)
	if err != nil {
		return nil, err
	}

	result := ParseAgentTable(table.First())

	c.logger.WithFields(map[string]interface{}{
		"player":       playerLink,
		"agents":       len(result.Agents),
		"skipped_rows": len(result.RowErrors),
	}).Debug("Fetched agent stats")

	return result, nil
}

// ParseAgentTable extracts agent rows in table order. Rows that are not
// full-width or carry no agent icon are ignored.
func ParseAgentTable(table *goquery.Selection) *AgentTable {
	result := &AgentTable{Agents: make([]contracts.AgentStat, 0)}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < agentRowCells {
			return
		}

		agent, ok := cells.Eq(0).Find("img").First().Attr("alt")
		if !ok || strings.TrimSpace(agent) == "" {
			return
		}

		usage := cellText(cells, 1)
		gamesPlayed, err := parseUsage(usage)
		if err != nil {
			result.RowErrors = append(result.RowErrors, err)
			return
		}

		result.Agents = append(result.Agents, contracts.AgentStat{
			Agent: strings.TrimSpace(agent),
			AgentFields: contracts.AgentFields{
				GamesPlayed: gamesPlayed,
				Rounds:      cellText(cells, 2),
				Rating:      cellText(cells, 3),
				ACS:         cellText(cells, 4),
				KD:          cellText(cells, 5),
				ADR:         cellText(cells, 6),
				KAST:        cellText(cells, 7),
				KPR:         cellText(cells, 8),
				APR:         cellText(cells, 9),
				FKPR:        cellText(cells, 10),
				FDPR:        cellText(cells, 11),
				Kills:       cellText(cells, 12),
				Deaths:      cellText(cells, 13),
				Assists:     cellText(cells, 14),
				FirstKills:  cellText(cells, 15),
				FirstDeaths: cellText(cells, 16),
			},
		})
	})

	return result
}

func cellText(cells *goquery.Selection, i int) contracts.StatValue {
	return contracts.StatValue(strings.TrimSpace(cells.Eq(i).Text()))
}

// parseUsage parses the "(12) 34%" usage cell into the games played count
func parseUsage(text contracts.StatValue) (int, error) {
	fields := strings.Fields(string(text))
	if len(fields) == 0 {
		return 0, &contracts.ParseError{Field: "games_played", Value: string(text)}
	}

	n, err := strconv.Atoi(strings.Trim(fields[0], "()"))
	if err != nil {
		return 0, &contracts.ParseError{Field: "games_played", Value: string(text), Err: err}
	}
	return n, nil
}
