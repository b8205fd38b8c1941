package classic

import (
	"context"
)

// API defines the interface for WoW Classic game data operations
type API interface {
	// GetRealms retrieves the index of all realms
	GetRealms(ctx context.Context) (*RealmsIndex, error)

	// GetRealm retrieves a realm by slug, or nil if it does not exist
	GetRealm(ctx context.Context, slug string) (*Realm, error)

	// SearchRealms searches realms by timezone with ordering and paging
	SearchRealms(ctx context.Context, search RealmSearch) (*RealmSearchResult, error)

	// GetRegions retrieves the index of all regions
	GetRegions(ctx context.Context) (*RegionsIndex, error)

	// GetRegion retrieves a region by ID, or nil if it does not exist
	GetRegion(ctx context.Context, id int64) (*Region, error)
}

var _ API = (*Client)(nil)
