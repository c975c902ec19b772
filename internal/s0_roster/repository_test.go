package s0_roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vctrank/internal/contracts"
	"github.com/wonny/vctrank/pkg/logger"
)

const rawInternational = `{
  "players": [
    {"player_link": "www.vlr.gg/player/9/tenz", "player_name": "TenZ", "player_team_initials": "SEN", "rating": "1.12", "role": "", "country": "ca"},
    {"player_link": "www.vlr.gg/player/4004/zekken", "player_name": "zekken", "player_team_initials": "SEN", "rating": 1.05},
    {"player_link": "www.vlr.gg/player/9/tenz", "player_name": "TenZ (dup)", "player_team_initials": "SEN", "rating": "1.12"}
  ]
}`

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(t.TempDir(), logger.NewNop())
	repo.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return repo
}

func writeFile(t *testing.T, repo *Repository, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(repo.Path(name), []byte(content), 0o644))
}

func TestStageFile(t *testing.T) {
	assert.Equal(t, "players_challengers.json", StageFile(contracts.CategoryChallengers, contracts.StageRaw))
	assert.Equal(t, "players_gamechangers.stat_enriched.json", StageFile(contracts.CategoryGameChangers, contracts.StageStatEnriched))
	assert.Equal(t, "players_scored_international.json", StageFile(contracts.CategoryInternational, contracts.StageRanked))
	assert.Equal(t, "filtered-challengers.json", FilteredFile(contracts.CategoryChallengers))
	assert.Equal(t, "", StageFile(contracts.CategoryChallengers, "DONE"))
}

func TestLoadRaw_IngestsAndDeduplicates(t *testing.T) {
	repo := newTestRepo(t)
	writeFile(t, repo, "players_international.json", rawInternational)

	roster, err := repo.LoadRaw(context.Background(), contracts.CategoryInternational)
	require.NoError(t, err)

	assert.Equal(t, contracts.LeagueInternational, roster.League)
	assert.Equal(t, contracts.StageRaw, roster.Stage)
	require.Len(t, roster.Players, 2)
	assert.Equal(t, "TenZ", roster.Players[0].Name)
	assert.Equal(t, contracts.StatValue("1.05"), roster.Players[1].Rating)
	assert.NoError(t, roster.Validate())

	// 원본의 알 수 없는 필드는 다음 스테이지 파일에도 남음
	roster.Stage = contracts.StageRoleTagged
	require.NoError(t, repo.Save(context.Background(), roster))
	saved, err := repo.Load(context.Background(), contracts.CategoryInternational, contracts.StageRoleTagged)
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"ca"`), saved.Players[0].Extra["country"])
	assert.Nil(t, saved.Players[1].Extra)
}

func TestDecode_SchemaMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"missing players", `{"league": "VCT-International"}`, "players"},
		{"null players", `{"players": null}`, "players"},
		{"bare list", `[{"player_link": "www.vlr.gg/player/1/a"}]`, "players"},
		{"empty identity key", `{"players": [{"player_link": "www.vlr.gg/player/1/a"}, {"player_name": "ghost"}]}`, "players[1].player_link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("players_international.json", []byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, contracts.ErrSchemaMismatch))

			var schemaErr *contracts.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, "players_international.json", schemaErr.File)
			assert.Equal(t, tt.field, schemaErr.Field)
		})
	}
}

func TestDecode_EmptyPlayersIsValid(t *testing.T) {
	roster, err := Decode("x.json", []byte(`{"players": []}`))
	require.NoError(t, err)
	assert.Empty(t, roster.Players)
}

func TestSaveAndLoad_StageVerified(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	score := 57.29
	roster := contracts.NewRoster(contracts.CategoryInternational, []contracts.Player{
		{Link: "www.vlr.gg/player/9/tenz", Name: "TenZ", TotalScore: &score},
	})
	roster.Stage = contracts.StageScored
	require.NoError(t, repo.Save(ctx, roster))

	assert.True(t, repo.Exists(contracts.CategoryInternational, contracts.StageScored))
	assert.Equal(t, []contracts.Stage{contracts.StageScored}, repo.CompletedStages(contracts.CategoryInternational))

	loaded, err := repo.Load(ctx, contracts.CategoryInternational, contracts.StageScored)
	require.NoError(t, err)
	assert.Equal(t, contracts.StageScored, loaded.Stage)
	assert.True(t, loaded.UpdatedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	require.Len(t, loaded.Players, 1)
	assert.InDelta(t, 57.29, *loaded.Players[0].TotalScore, 1e-9)

	// 파일을 다른 스테이지 이름으로 복사하면 불일치로 실패해야 함
	data, err := os.ReadFile(repo.Path(StageFile(contracts.CategoryInternational, contracts.StageScored)))
	require.NoError(t, err)
	writeFile(t, repo, StageFile(contracts.CategoryInternational, contracts.StageRanked), string(data))

	_, err = repo.Load(ctx, contracts.CategoryInternational, contracts.StageRanked)
	var schemaErr *contracts.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "stage", schemaErr.Field)
}

func TestLoad_DuplicateIdentityKey(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	roster := contracts.NewRoster(contracts.CategoryChallengers, []contracts.Player{
		{Link: "www.vlr.gg/player/77/kiles", Name: "kiles"},
		{Link: "www.vlr.gg/player/77/kiles", Name: "kiles (copy)"},
	})
	roster.Stage = contracts.StageRoleTagged
	require.NoError(t, repo.Save(ctx, roster))

	_, err := repo.Load(ctx, contracts.CategoryChallengers, contracts.StageRoleTagged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrSchemaMismatch))

	var schemaErr *contracts.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "players", schemaErr.Field)
	assert.Contains(t, schemaErr.Message, "www.vlr.gg/player/77/kiles")
}

func TestLoad_MissingFile(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Load(context.Background(), contracts.CategoryChallengers, contracts.StageStatEnriched)
	assert.True(t, errors.Is(err, contracts.ErrSchemaMismatch))
	assert.Contains(t, err.Error(), "players_challengers.stat_enriched.json")
}

func TestWriteFileAtomic_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":1}`)))
	require.NoError(t, WriteFileAtomic(path, []byte(`{"a":2}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestIGLFile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	igls, err := repo.LoadIGLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, igls)

	require.NoError(t, repo.AppendIGLs(ctx, []contracts.IGLEntry{
		{Name: "TenZ", Link: "www.vlr.gg/player/9/tenz", League: contracts.LeagueInternational},
	}))
	require.NoError(t, repo.AppendIGLs(ctx, []contracts.IGLEntry{
		{Name: "kiles", Link: "www.vlr.gg/player/77/kiles", League: contracts.LeagueChallengers},
	}))

	igls, err = repo.LoadIGLs(ctx)
	require.NoError(t, err)
	require.Len(t, igls, 2)
	assert.Equal(t, "kiles", igls[1].Name)

	// 같은 리그를 다시 돌려도 IGL은 한 번만 기록
	require.NoError(t, repo.AppendIGLs(ctx, []contracts.IGLEntry{
		{Name: "TenZ", Link: "www.vlr.gg/player/9/tenz", League: contracts.LeagueInternational},
		{Name: "Boaster", Link: "www.vlr.gg/player/5/boaster", League: contracts.LeagueInternational},
		{Name: "Boaster", Link: "www.vlr.gg/player/5/boaster", League: contracts.LeagueInternational},
	}))
	igls, err = repo.LoadIGLs(ctx)
	require.NoError(t, err)
	require.Len(t, igls, 3)
	assert.Equal(t, []string{"TenZ", "kiles", "Boaster"}, []string{igls[0].Name, igls[1].Name, igls[2].Name})

	require.NoError(t, repo.ClearIGLs(ctx))
	require.NoError(t, repo.ClearIGLs(ctx))
	igls, err = repo.LoadIGLs(ctx)
	require.NoError(t, err)
	assert.Empty(t, igls)
}
