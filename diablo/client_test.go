package diablo

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/internal/testutil"
)

func newTestConnector(t *testing.T, fake *testutil.FakeBattleNet) *Client {
	t.Helper()

	client, err := blizzard.NewClient("id", "secret", blizzard.RegionKR, zerolog.Nop(),
		blizzard.WithBaseURL(fake.URL),
		blizzard.WithTokenURL(fake.TokenURL()),
	)
	require.NoError(t, err)
	return New(client)
}

func TestGetActs(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/d3/data/act", `{
		"acts": [
			{"slug": "act-i", "number": 1, "name": "Act I", "quests": [{"id": 87700, "name": "The Fallen Star", "slug": "the-fallen-star"}]},
			{"slug": "act-ii", "number": 2, "name": "Act II", "quests": []}
		]
	}`)

	acts, err := newTestConnector(t, fake).GetActs(context.Background())
	require.NoError(t, err)
	require.Len(t, acts.Acts, 2)

	assert.Equal(t, "act-i", acts.Acts[0].Slug)
	require.Len(t, acts.Acts[0].Quests, 1)
	assert.Equal(t, int64(87700), acts.Acts[0].Quests[0].ID)

	req := fake.LastRequest()
	assert.Equal(t, "ko_KR", req.URL.Query().Get("locale"))
	assert.Empty(t, req.Header.Get("Battlenet-Namespace"))
}

func TestGetAct(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/d3/data/act/1", `{"slug": "act-i", "number": 1, "name": "Act I", "quests": []}`)

	connector := newTestConnector(t, fake)

	act, err := connector.GetAct(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, act)
	assert.Equal(t, "Act I", act.Name)

	missing, err := connector.GetAct(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
