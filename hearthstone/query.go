package hearthstone

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// MaxPageSize is the largest page the card search endpoint serves.
	MaxPageSize = 500
)

// ErrInvalidQuery is returned by CardSearchQueryBuilder.Build for out of range values.
var ErrInvalidQuery = errors.New("invalid card search query")

// CardSearchQuery holds the filters available for card searching. Zero values
// are left out of the request.
type CardSearchQuery struct {
	// Set is the slug of the set the card belongs to. Empty searches all sets.
	Set string
	// Class is the slug of the card's class.
	Class string
	// ManaCosts, Attack and Health match any of the listed values.
	ManaCosts  []int
	Attack     []int
	Health     []int
	Rarity     string
	Type       string
	MinionType string
	Keyword    string
	// TextFilter matches card names and rules text.
	TextFilter string
	// GameMode is "constructed" (default), "battlegrounds", "arena" or "duels".
	GameMode string
	// Sort is a comma separated list such as "manaCost:asc,name:asc".
	Sort     string
	Page     int
	PageSize int
}

// Params returns the query string for the card search endpoint.
func (q *CardSearchQuery) Params() url.Values {
	params := url.Values{}
	if q == nil {
		return params
	}

	setString := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	setInts := func(key string, values []int) {
		if len(values) > 0 {
			params.Set(key, joinInts(values))
		}
	}

	setString("set", q.Set)
	setString("class", q.Class)
	setInts("manaCost", q.ManaCosts)
	setInts("attack", q.Attack)
	setInts("health", q.Health)
	setString("rarity", q.Rarity)
	setString("type", q.Type)
	setString("minionType", q.MinionType)
	setString("keyword", q.Keyword)
	setString("textFilter", q.TextFilter)
	setString("gameMode", q.GameMode)
	setString("sort", q.Sort)
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}

	return params
}

func (q *CardSearchQuery) clone() *CardSearchQuery {
	if q == nil {
		return &CardSearchQuery{}
	}
	c := *q
	c.ManaCosts = slices.Clone(q.ManaCosts)
	c.Attack = slices.Clone(q.Attack)
	c.Health = slices.Clone(q.Health)
	return &c
}

// CardSearchQueryBuilder fluently builds a CardSearchQuery.
//
//	query, err := hearthstone.NewCardSearchQueryBuilder().
//		WithSet("rastakhans-rumble").
//		WithClass("mage").
//		WithManaCost(7, 1).
//		WithManaCost(3).
//		Build()
type CardSearchQueryBuilder struct {
	query CardSearchQuery
}

// NewCardSearchQueryBuilder returns a builder for an empty query.
func NewCardSearchQueryBuilder() *CardSearchQueryBuilder {
	return &CardSearchQueryBuilder{}
}

// WithSet filters by set slug.
func (b *CardSearchQueryBuilder) WithSet(set string) *CardSearchQueryBuilder {
	b.query.Set = set
	return b
}

// WithClass filters by class slug.
func (b *CardSearchQueryBuilder) WithClass(class string) *CardSearchQueryBuilder {
	b.query.Class = class
	return b
}

// WithManaCost adds mana costs to match. Repeated calls accumulate; the
// resulting list is sorted and free of duplicates.
func (b *CardSearchQueryBuilder) WithManaCost(costs ...int) *CardSearchQueryBuilder {
	b.query.ManaCosts = mergeSorted(b.query.ManaCosts, costs)
	return b
}

// WithAttack adds attack values to match.
func (b *CardSearchQueryBuilder) WithAttack(values ...int) *CardSearchQueryBuilder {
	b.query.Attack = mergeSorted(b.query.Attack, values)
	return b
}

// WithHealth adds health values to match.
func (b *CardSearchQueryBuilder) WithHealth(values ...int) *CardSearchQueryBuilder {
	b.query.Health = mergeSorted(b.query.Health, values)
	return b
}

// WithRarity filters by rarity slug.
func (b *CardSearchQueryBuilder) WithRarity(rarity string) *CardSearchQueryBuilder {
	b.query.Rarity = rarity
	return b
}

// WithType filters by card type slug.
func (b *CardSearchQueryBuilder) WithType(cardType string) *CardSearchQueryBuilder {
	b.query.Type = cardType
	return b
}

// WithMinionType filters by minion type slug.
func (b *CardSearchQueryBuilder) WithMinionType(minionType string) *CardSearchQueryBuilder {
	b.query.MinionType = minionType
	return b
}

// WithKeyword filters by keyword slug.
func (b *CardSearchQueryBuilder) WithKeyword(keyword string) *CardSearchQueryBuilder {
	b.query.Keyword = keyword
	return b
}

// WithTextFilter matches text in card names and rules text.
func (b *CardSearchQueryBuilder) WithTextFilter(text string) *CardSearchQueryBuilder {
	b.query.TextFilter = text
	return b
}

// WithGameMode selects the game mode card pool.
func (b *CardSearchQueryBuilder) WithGameMode(mode string) *CardSearchQueryBuilder {
	b.query.GameMode = mode
	return b
}

// WithSort appends a sort key, e.g. WithSort("manaCost", "asc").
func (b *CardSearchQueryBuilder) WithSort(field, direction string) *CardSearchQueryBuilder {
	key := field
	if direction != "" {
		key += ":" + direction
	}
	if b.query.Sort == "" {
		b.query.Sort = key
	} else {
		b.query.Sort += "," + key
	}
	return b
}

// WithPage selects a 1-based results page.
func (b *CardSearchQueryBuilder) WithPage(page int) *CardSearchQueryBuilder {
	b.query.Page = page
	return b
}

// WithPageSize sets the number of cards per page.
func (b *CardSearchQueryBuilder) WithPageSize(size int) *CardSearchQueryBuilder {
	b.query.PageSize = size
	return b
}

// Build validates and returns the configured query. The builder can be reused.
func (b *CardSearchQueryBuilder) Build() (*CardSearchQuery, error) {
	q := b.query.clone()

	if q.Page < 0 {
		return nil, fmt.Errorf("%w: page must not be negative", ErrInvalidQuery)
	}
	if q.PageSize < 0 || q.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page size must be between 1 and %d", ErrInvalidQuery, MaxPageSize)
	}
	for _, values := range [][]int{q.ManaCosts, q.Attack, q.Health} {
		if len(values) > 0 && values[0] < 0 {
			return nil, fmt.Errorf("%w: stat values must not be negative", ErrInvalidQuery)
		}
	}

	return q, nil
}

func mergeSorted(existing, add []int) []int {
	merged := append(slices.Clone(existing), add...)
	slices.Sort(merged)
	return slices.Compact(merged)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
