package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

func total(v float64) *float64 { return &v }

func player(link string, score *float64) contracts.Player {
	return contracts.Player{Link: link, Name: link, TeamInitials: "T", TotalScore: score}
}

func names(players []contracts.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Link
	}
	return out
}

func TestRank_DescendingAndStable(t *testing.T) {
	roster := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("a", total(40)),
		player("b", total(55.5)),
		player("c", total(40)),
		player("d", nil),
		player("e", total(60)),
	})
	roster.Stage = contracts.StageScored

	result, err := NewRanker(logger.NewNop()).Rank(context.Background(), roster)
	require.NoError(t, err)

	assert.Equal(t, []string{"e", "b", "a", "c", "d"}, names(roster.Players))
	assert.Equal(t, contracts.StageRanked, roster.Stage)
	assert.Equal(t, 5, result.InputCount)
	assert.Equal(t, 4, result.OutputCount)
	assert.Equal(t, 1, result.Skipped)
	assert.Nil(t, roster.Players[4].TotalScore, "missing total must not be written back")
}

func TestRank_MissingTotalTiesWithZero(t *testing.T) {
	roster := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("missing", nil),
		player("zero", total(0)),
		player("one", total(1)),
	})

	_, err := NewRanker(logger.NewNop()).Rank(context.Background(), roster)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "missing", "zero"}, names(roster.Players))
}

func TestFilter_RemovesHigherPriorityPlayers(t *testing.T) {
	international := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{
		player("x", nil), player("y", nil),
	})
	challengers := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("x", nil), player("z", nil), player("w", nil),
	})

	filtered, report := Filter(challengers, []*contracts.Roster{international})

	assert.Equal(t, []string{"z", "w"}, names(filtered.Players))
	assert.Equal(t, contracts.CategoryChallengers, filtered.Category)
	assert.Equal(t, 3, report.OriginalCount)
	assert.Equal(t, 2, report.FilteredCount)
	assert.Equal(t, 1, report.RemovedCount())
	assert.Equal(t, []contracts.RemovedPlayer{{Name: "x", Link: "x", Team: "T"}},
		report.RemovedBy(contracts.CategoryInternational))

	// input roster untouched
	assert.Len(t, challengers.Players, 3)
}

func TestFilter_AttributesToFirstMatchingLeague(t *testing.T) {
	international := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{player("x", nil)})
	gamechangers := contracts.NewRoster(contracts.CategoryGameChangers, []contracts.Player{player("x", nil), player("y", nil)})
	challengers := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("x", nil), player("y", nil), player("z", nil),
	})

	filtered, report := Filter(challengers, []*contracts.Roster{international, gamechangers})

	assert.Equal(t, []string{"z"}, names(filtered.Players))
	assert.Len(t, report.RemovedBy(contracts.CategoryInternational), 1)
	assert.Len(t, report.RemovedBy(contracts.CategoryGameChangers), 1)
	assert.Equal(t, "y", report.RemovedBy(contracts.CategoryGameChangers)[0].Link)
}

func TestFilter_Idempotent(t *testing.T) {
	international := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{player("x", nil)})
	challengers := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("a", nil), player("x", nil), player("b", nil),
	})

	once, _ := Filter(challengers, []*contracts.Roster{international})
	twice, report := Filter(once, []*contracts.Roster{international})

	assert.Equal(t, names(once.Players), names(twice.Players))
	assert.Equal(t, 0, report.RemovedCount())
}

func TestFilter_EmptyHigherRoster(t *testing.T) {
	international := contracts.NewRoster(contracts.CategoryInternational, nil)
	challengers := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{player("a", nil)})

	filtered, report := Filter(challengers, []*contracts.Roster{international})
	assert.Equal(t, []string{"a"}, names(filtered.Players))
	assert.NotNil(t, report.RemovedBy(contracts.CategoryInternational))
	assert.Empty(t, report.RemovedBy(contracts.CategoryInternational))
}

func TestFilterByPriority(t *testing.T) {
	rosters := map[contracts.Category]*contracts.Roster{
		contracts.CategoryInternational: contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{player("x", nil)}),
		contracts.CategoryGameChangers:  contracts.NewRoster(contracts.CategoryGameChangers, []contracts.Player{player("x", nil), player("g", nil)}),
	}

	filtered, report, err := FilterByPriority(rosters, contracts.AllCategories(), contracts.CategoryGameChangers)
	require.NoError(t, err)
	assert.Equal(t, []string{"g"}, names(filtered.Players))
	assert.Equal(t, 1, report.RemovedCount())

	// 최상위 리그는 제거 대상 없음
	filtered, report, err = FilterByPriority(rosters, contracts.AllCategories(), contracts.CategoryInternational)
	require.NoError(t, err)
	assert.Len(t, filtered.Players, 1)
	assert.Equal(t, 0, report.RemovedCount())

	_, _, err = FilterByPriority(rosters, contracts.AllCategories(), contracts.CategoryChallengers)
	assert.Error(t, err)
}

func TestCombine_SortsAndReportsDuplicates(t *testing.T) {
	international := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{
		player("x", total(70)), player("y", total(50)),
	})
	challengers := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		player("z", total(60)), player("x", total(50)),
	})

	combined, duplicates := Combine(international, challengers)

	assert.Equal(t, []string{"x", "z", "y", "x"}, names(combined.Players))
	assert.Equal(t, []string{"x"}, duplicates)
	assert.Equal(t, contracts.StageRanked, combined.Stage)
}

func TestCombine_Empty(t *testing.T) {
	combined, duplicates := Combine()
	assert.NotNil(t, combined.Players)
	assert.Empty(t, combined.Players)
	assert.Empty(t, duplicates)
}
