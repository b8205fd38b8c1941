package hearthstone

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// DefaultConcurrency is the number of pages SearchAllCards fetches in parallel.
const DefaultConcurrency = 4

// Client is a Hearthstone connector built on a blizzard.Client.
type Client struct {
	client      *blizzard.Client
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithConcurrency sets how many pages SearchAllCards fetches in parallel.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a Hearthstone connector on top of client.
func New(client *blizzard.Client, opts ...Option) *Client {
	c := &Client{
		client:      client,
		concurrency: DefaultConcurrency,
		logger:      client.Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchCards returns one page of cards matching query. A nil query searches
// all cards with the API's default paging.
func (c *Client) SearchCards(ctx context.Context, query *CardSearchQuery) (*CardSearchResult, error) {
	var result CardSearchResult
	if err := c.client.Get(ctx, "/hearthstone/cards", blizzard.Request{Params: query.Params()}, &result); err != nil {
		return nil, fmt.Errorf("failed to search cards: %w", err)
	}
	return &result, nil
}

// GetCard retrieves a card by ID or slug. A card that does not exist yields (nil, nil).
func (c *Client) GetCard(ctx context.Context, idOrSlug string) (*Card, error) {
	var card Card
	err := c.client.Get(ctx, "/hearthstone/cards/"+url.PathEscape(idOrSlug), blizzard.Request{}, &card)
	if blizzard.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", idOrSlug, err)
	}
	return &card, nil
}

// SearchAllCards returns the cards of every page matching query, in page
// order. The first page is fetched alone to learn the page count; the rest are
// fetched concurrently. Any page failing fails the whole search.
func (c *Client) SearchAllCards(ctx context.Context, query *CardSearchQuery) ([]Card, error) {
	base := query.clone()
	base.Page = 1

	first, err := c.SearchCards(ctx, base)
	if err != nil {
		return nil, err
	}
	if first.PageCount <= 1 {
		return first.Cards, nil
	}

	c.logger.Debug().
		Int("pages", first.PageCount).
		Int("cards", first.CardCount).
		Msg("Fetching remaining card pages")

	pages := make([][]Card, first.PageCount)
	pages[0] = first.Cards

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for page := 2; page <= first.PageCount; page++ {
		g.Go(func() error {
			q := base.clone()
			q.Page = page

			result, err := c.SearchCards(ctx, q)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			pages[page-1] = result.Cards
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]Card, 0, first.CardCount)
	for _, p := range pages {
		cards = append(cards, p...)
	}
	return cards, nil
}
