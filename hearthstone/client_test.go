package hearthstone

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/bubblehearth/blizzard"
	"github.com/s0up4200/bubblehearth/internal/testutil"
)

func newTestConnector(t *testing.T, fake *testutil.FakeBattleNet, opts ...Option) *Client {
	t.Helper()

	client, err := blizzard.NewClient("id", "secret", blizzard.RegionUS, zerolog.Nop(),
		blizzard.WithBaseURL(fake.URL),
		blizzard.WithTokenURL(fake.TokenURL()),
	)
	require.NoError(t, err)
	return New(client, opts...)
}

// pagedCards serves pageCount pages of two cards each, with IDs derived from the page.
func pagedCards(pageCount int, failPage int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page == 0 {
			page = 1
		}
		if page == failPage {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"cards":[{"id":%d,"slug":"card-%d","manaCost":1},{"id":%d,"slug":"card-%d","manaCost":2}],"cardCount":%d,"pageCount":%d,"page":%d}`,
			page*10+1, page*10+1, page*10+2, page*10+2, pageCount*2, pageCount, page)
	}
}

func TestSearchCards_NilQuery(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", pagedCards(3, 0))

	result, err := newTestConnector(t, fake).SearchCards(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, result.Cards, 2)
	assert.Equal(t, 6, result.CardCount)
	assert.True(t, result.HasMorePages())

	req := fake.LastRequest()
	assert.Equal(t, "en_US", req.URL.Query().Get("locale"))
	assert.Len(t, req.URL.Query(), 1, "only the locale is sent")
	assert.Empty(t, req.Header.Get("Battlenet-Namespace"))
}

func TestSearchCards_WithQuery(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", pagedCards(1, 0))

	query, err := NewCardSearchQueryBuilder().WithClass("mage").WithManaCost(3, 1).Build()
	require.NoError(t, err)

	_, err = newTestConnector(t, fake).SearchCards(context.Background(), query)
	require.NoError(t, err)

	params := fake.LastRequest().URL.Query()
	assert.Equal(t, "mage", params.Get("class"))
	assert.Equal(t, "1,3", params.Get("manaCost"))
}

func TestSearchAllCards(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", pagedCards(5, 0))

	query := &CardSearchQuery{Class: "priest", Page: 4}
	cards, err := newTestConnector(t, fake, WithConcurrency(2)).SearchAllCards(context.Background(), query)
	require.NoError(t, err)
	require.Len(t, cards, 10)

	for i, card := range cards {
		page := i/2 + 1
		assert.Equal(t, int64(page*10+1+i%2), card.ID, "cards are returned in page order")
	}
	assert.Equal(t, 5, fake.DataRequests())
	assert.Equal(t, 4, query.Page, "caller's query is not modified")
	assert.Equal(t, 1, fake.TokenRequests())
}

func TestSearchAllCards_SinglePage(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", pagedCards(1, 0))

	cards, err := newTestConnector(t, fake).SearchAllCards(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, 1, fake.DataRequests())
}

func TestSearchAllCards_PageFailure(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", pagedCards(4, 3))

	cards, err := newTestConnector(t, fake).SearchAllCards(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, cards)
	assert.Contains(t, err.Error(), "page 3")

	var apiErr *blizzard.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsServerError())
}

func TestSearchAllCards_ConcurrencyLimit(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		peak     int
	)
	inner := pagedCards(7, 0)

	fake := testutil.NewFakeBattleNet(t)
	fake.Handle("/hearthstone/cards", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			mu.Lock()
			inFlight++
			if inFlight > peak {
				peak = inFlight
			}
			mu.Unlock()
			time.Sleep(20 * time.Millisecond)
			mu.Lock()
			inFlight--
			mu.Unlock()
		}
		inner(w, r)
	})

	cards, err := newTestConnector(t, fake, WithConcurrency(2)).SearchAllCards(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, cards, 14)
	assert.LessOrEqual(t, peak, 2)
}

func TestGetCard(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)
	fake.HandleJSON("/hearthstone/cards/52119-arch-villain-rafaam", `{
		"id": 52119,
		"collectible": 1,
		"slug": "52119-arch-villain-rafaam",
		"classId": 9,
		"cardTypeId": 4,
		"cardSetId": 1130,
		"rarityId": 5,
		"artistName": "Jomaro Kindred",
		"health": 8,
		"attack": 7,
		"manaCost": 7,
		"name": "Arch-Villain Rafaam",
		"text": "<b>Taunt</b> <b>Battlecry:</b> Replace your hand and deck with <b>Legendary</b> minions.",
		"keywordIds": [1, 8]
	}`)

	card, err := newTestConnector(t, fake).GetCard(context.Background(), "52119-arch-villain-rafaam")
	require.NoError(t, err)
	require.NotNil(t, card)

	assert.Equal(t, "Arch-Villain Rafaam", card.Name.String())
	assert.Equal(t, 7, card.ManaCost)
	assert.Equal(t, []int{1, 8}, card.KeywordIDs)
	assert.True(t, card.IsCollectible())
}

func TestGetCard_NotFound(t *testing.T) {
	fake := testutil.NewFakeBattleNet(t)

	card, err := newTestConnector(t, fake).GetCard(context.Background(), "0")
	require.NoError(t, err)
	assert.Nil(t, card)
}
