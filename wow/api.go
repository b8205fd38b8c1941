package wow

import (
	"context"
)

// API defines the interface for retail WoW operations
type API interface {
	// GetRealms retrieves the index of all realms
	GetRealms(ctx context.Context) (*RealmsIndex, error)

	// GetRealm retrieves a realm by slug, or nil if it does not exist
	GetRealm(ctx context.Context, slug string) (*Realm, error)

	// GetItem retrieves an item by ID, or nil if it does not exist
	GetItem(ctx context.Context, id int64) (*Item, error)

	// GetCharacter retrieves a character profile summary, or nil if it does not exist
	GetCharacter(ctx context.Context, realmSlug, name string) (*Character, error)
}

var _ API = (*Client)(nil)
