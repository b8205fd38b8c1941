package hearthstone

import (
	"context"
)

// API defines the interface for Hearthstone card operations
type API interface {
	// SearchCards retrieves a single page of cards matching the query
	SearchCards(ctx context.Context, query *CardSearchQuery) (*CardSearchResult, error)

	// SearchAllCards retrieves every page of cards matching the query
	SearchAllCards(ctx context.Context, query *CardSearchQuery) ([]Card, error)

	// GetCard retrieves a card by ID or slug, or nil if it does not exist
	GetCard(ctx context.Context, idOrSlug string) (*Card, error)
}

var _ API = (*Client)(nil)
