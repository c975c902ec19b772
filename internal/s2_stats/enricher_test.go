package s2_stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/internal/external/vlr"
	"github.com/wonny/vctrank/pkg/logger"
)

type fakeFetcher map[string]func() (*vlr.AgentTable, error)

func (f fakeFetcher) FetchAgentStats(ctx context.Context, playerLink string) (*vlr.AgentTable, error) {
	fn, ok := f[playerLink]
	if !ok {
		return nil, contracts.ErrNotFound
	}
	return fn()
}

func agent(name, rating string) contracts.AgentStat {
	return contracts.AgentStat{Agent: name, AgentFields: contracts.AgentFields{GamesPlayed: 1, Rating: contracts.StatValue(rating)}}
}

func TestEnrich(t *testing.T) {
	fetcher := fakeFetcher{
		"www.vlr.gg/player/1/a": func() (*vlr.AgentTable, error) {
			return &vlr.AgentTable{Agents: []contracts.AgentStat{agent("jett", "1.10"), agent("omen", "0.95")}}, nil
		},
		"www.vlr.gg/player/2/b": func() (*vlr.AgentTable, error) {
			return &vlr.AgentTable{
				Agents:    []contracts.AgentStat{agent("sage", "1.00")},
				RowErrors: []error{&contracts.ParseError{Field: "games_played", Value: "n/a"}},
			}, nil
		},
		"www.vlr.gg/player/4/d": func() (*vlr.AgentTable, error) {
			return nil, &contracts.FetchError{URL: "x", Err: errors.New("503")}
		},
	}

	roster := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		{Link: "www.vlr.gg/player/1/a", Name: "a"},
		{Link: "www.vlr.gg/player/2/b", Name: "b"},
		{Link: "www.vlr.gg/player/3/c", Name: "c", Agents: []contracts.AgentStat{agent("stale", "1.0")}},
		{Link: "www.vlr.gg/player/4/d", Name: "d"},
	})
	roster.Stage = contracts.StageRoleTagged

	log := logger.NewNop()
	e := NewEnricher(fetcher, collector.NewCollector(collector.Config{Workers: 3}, log), log)

	result, err := e.Enrich(context.Background(), roster)
	require.NoError(t, err)

	assert.Equal(t, contracts.StageStatEnriched, roster.Stage)
	require.Len(t, roster.Players, 4)

	require.Len(t, roster.Players[0].Agents, 2)
	assert.Equal(t, "jett", roster.Players[0].Agents[0].Agent)
	assert.Equal(t, "omen", roster.Players[0].Agents[1].Agent)
	require.Len(t, roster.Players[1].Agents, 1)
	assert.Empty(t, roster.Players[2].Agents)
	assert.Empty(t, roster.Players[3].Agents)

	assert.Equal(t, 4, result.InputCount)
	assert.Equal(t, 2, result.OutputCount)
	assert.Equal(t, 1, result.Skipped)
	// fetch 실패 1 + 행 파싱 실패 1
	assert.Equal(t, 2, result.Failures)
}
