package blizzard

// DocumentKey links to a related document.
type DocumentKey struct {
	Href string `json:"href"`
}

// Links is the "_links" object present on most game data documents.
type Links struct {
	Self DocumentKey `json:"self"`
}

// KeyedName is the common {key, name, id} reference embedded in documents.
type KeyedName struct {
	Key  *DocumentKey    `json:"key,omitempty"`
	Name LocalizedString `json:"name"`
	ID   int64           `json:"id"`
}

// TypedName is the {type, name} enumeration pair used for qualities, genders,
// factions and similar fields.
type TypedName struct {
	Type string          `json:"type"`
	Name LocalizedString `json:"name"`
}

// SearchResult is a page of results from a game data search endpoint.
type SearchResult[T any] struct {
	Page        int                   `json:"page"`
	PageSize    int                   `json:"pageSize"`
	MaxPageSize int                   `json:"maxPageSize"`
	PageCount   int                   `json:"pageCount"`
	Results     []SearchResultItem[T] `json:"results"`
}

// SearchResultItem wraps one search hit.
type SearchResultItem[T any] struct {
	Key  DocumentKey `json:"key"`
	Data T           `json:"data"`
}

// HasMorePages reports whether pages after the current one exist.
func (r *SearchResult[T]) HasMorePages() bool {
	return r.Page < r.PageCount
}
