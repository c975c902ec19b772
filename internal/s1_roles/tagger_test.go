package s1_roles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vctrank/internal/collector"
	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

type fakeResolver struct {
	teams    map[string]string // player link → team href
	captains map[string]string // team href → captain href
	errs     map[string]error  // player link → team lookup error
}

func (f *fakeResolver) FetchTeamLink(ctx context.Context, playerLink string) (string, error) {
	if err, ok := f.errs[playerLink]; ok {
		return "", err
	}
	team, ok := f.teams[playerLink]
	if !ok {
		return "", contracts.ErrNotFound
	}
	return team, nil
}

func (f *fakeResolver) FetchCaptainLink(ctx context.Context, teamHref string) (string, error) {
	captain, ok := f.captains[teamHref]
	if !ok {
		return "", contracts.ErrNotFound
	}
	return captain, nil
}

func newTagger(r TeamResolver) *Tagger {
	log := logger.NewNop()
	return NewTagger(r, collector.NewCollector(collector.Config{Workers: 2}, log), log)
}

func TestTag(t *testing.T) {
	resolver := &fakeResolver{
		teams: map[string]string{
			"www.vlr.gg/player/9/tenz":      "/team/2/sentinels",
			"www.vlr.gg/player/4004/zekken": "/team/2/sentinels",
			"www.vlr.gg/player/5/solo":      "/team/8/nocaptain",
		},
		captains: map[string]string{
			"/team/2/sentinels": "/player/9/tenz",
		},
		errs: map[string]error{
			"www.vlr.gg/player/6/down": &contracts.FetchError{URL: "x", Err: errors.New("timeout")},
		},
	}

	roster := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{
		{Link: "www.vlr.gg/player/9/tenz", Name: "TenZ"},
		{Link: "www.vlr.gg/player/4004/zekken", Name: "zekken", Role: contracts.RoleIGL},
		{Link: "www.vlr.gg/player/5/solo", Name: "solo"},
		{Link: "www.vlr.gg/player/7/teamless", Name: "teamless"},
		{Link: "www.vlr.gg/player/6/down", Name: "down"},
	})

	result, err := newTagger(resolver).Tag(context.Background(), roster)
	require.NoError(t, err)

	assert.Equal(t, contracts.StageRoleTagged, roster.Stage)
	assert.Equal(t, 5, result.InputCount)
	assert.Equal(t, 5, result.OutputCount)
	assert.Equal(t, 1, result.Failures)

	for _, p := range roster.Players {
		assert.Equal(t, contracts.LeagueInternational, p.League, p.Name)
	}
	assert.True(t, roster.Players[0].IsIGL())
	// 이전 값은 초기화 후 재판정
	assert.False(t, roster.Players[1].IsIGL())
	assert.False(t, roster.Players[2].IsIGL())
	assert.False(t, roster.Players[3].IsIGL())
	assert.False(t, roster.Players[4].IsIGL())

	igls := roster.IGLs()
	require.Len(t, igls, 1)
	assert.Equal(t, "TenZ", igls[0].Name)
}
