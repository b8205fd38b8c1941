package hearthstone

import (
	"github.com/s0up4200/bubblehearth/blizzard"
)

// Card is a Hearthstone card. Stat fields are zero for card types that do not have them.
type Card struct {
	ID            int64                    `json:"id"`
	Collectible   int                      `json:"collectible"`
	Slug          string                   `json:"slug"`
	ClassID       int                      `json:"classId"`
	MultiClassIDs []int                    `json:"multiClassIds"`
	CardTypeID    int                      `json:"cardTypeId"`
	CardSetID     int                      `json:"cardSetId"`
	RarityID      int                      `json:"rarityId"`
	MinionTypeID  int                      `json:"minionTypeId,omitempty"`
	ArtistName    string                   `json:"artistName"`
	Health        int                      `json:"health,omitempty"`
	Attack        int                      `json:"attack,omitempty"`
	ManaCost      int                      `json:"manaCost"`
	Name          blizzard.LocalizedString `json:"name"`
	Text          blizzard.LocalizedString `json:"text"`
	Image         blizzard.LocalizedString `json:"image"`
	ImageGold     blizzard.LocalizedString `json:"imageGold"`
	FlavorText    blizzard.LocalizedString `json:"flavorText"`
	CropImage     string                   `json:"cropImage"`
	KeywordIDs    []int                    `json:"keywordIds,omitempty"`
	ParentID      int64                    `json:"parentId,omitempty"`
	CopyOfCardID  int64                    `json:"copyOfCardId,omitempty"`
}

// IsCollectible reports whether the card can be collected.
func (c *Card) IsCollectible() bool {
	return c.Collectible == 1
}

// CardSearchResult is one page of card search results.
type CardSearchResult struct {
	Cards     []Card `json:"cards"`
	CardCount int    `json:"cardCount"`
	PageCount int    `json:"pageCount"`
	Page      int    `json:"page"`
}

// HasMorePages reports whether pages after the current one exist.
func (r *CardSearchResult) HasMorePages() bool {
	return r.Page < r.PageCount
}
