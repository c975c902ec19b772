package contracts

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterReport_MarshalJSON(t *testing.T) {
	report := FilterReport{
		Target:        CategoryChallengers,
		OriginalCount: 3,
		FilteredCount: 2,
		Removed: map[Category][]RemovedPlayer{
			CategoryInternational: {{Name: "a", Link: "www.vlr.gg/player/1/a", Team: "SEN"}},
			CategoryGameChangers:  nil,
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &generic))

	assert.Equal(t, "challengers", generic["target"])
	assert.EqualValues(t, 1, generic["removed_count"])
	assert.EqualValues(t, 3, generic["original_count"])

	removed, ok := generic["removed_international"].([]interface{})
	require.True(t, ok)
	require.Len(t, removed, 1)
	assert.Equal(t, "SEN", removed[0].(map[string]interface{})["team"])

	gc, ok := generic["removed_gamechangers"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, gc)
}
