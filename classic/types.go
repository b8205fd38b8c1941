package classic

import (
	"github.com/s0up4200/bubblehearth/blizzard"
)

// RealmsIndex is the response of the realm index endpoint.
type RealmsIndex struct {
	Links  blizzard.Links `json:"_links"`
	Realms []Realm        `json:"realms"`
}

// Realm holds metadata for a WoW Classic realm. Index entries only carry the
// key, name, ID and slug; the remaining fields are set on single-realm and
// search responses.
type Realm struct {
	Links        *blizzard.Links          `json:"_links,omitempty"`
	Key          *blizzard.DocumentKey    `json:"key,omitempty"`
	Name         blizzard.LocalizedString `json:"name"`
	ID           int64                    `json:"id"`
	Slug         string                   `json:"slug"`
	Category     blizzard.LocalizedString `json:"category"`
	Locale       string                   `json:"locale,omitempty"`
	Timezone     blizzard.Timezone        `json:"timezone,omitempty"`
	IsTournament bool                     `json:"is_tournament"`
	Region       *blizzard.KeyedName      `json:"region,omitempty"`
	Type         *blizzard.TypedName      `json:"type,omitempty"`
}

// RealmSearchResult is a page of realm search hits.
type RealmSearchResult = blizzard.SearchResult[Realm]

// RealmSearch narrows a realm search. Zero values are omitted from the query.
type RealmSearch struct {
	Timezone blizzard.Timezone
	// OrderBy is a field name such as "id" or "name.en_US".
	OrderBy string
	// Page is 1-based; zero requests the first page.
	Page int
}

// RegionsIndex is the response of the region index endpoint.
type RegionsIndex struct {
	Links   blizzard.Links         `json:"_links"`
	Regions []blizzard.DocumentKey `json:"regions"`
}

// Region is a WoW Classic region document.
type Region struct {
	Links       *blizzard.Links          `json:"_links,omitempty"`
	ID          int64                    `json:"id"`
	Name        blizzard.LocalizedString `json:"name"`
	Tag         string                   `json:"tag"`
	PatchString string                   `json:"patch_string,omitempty"`
}
