package wow

import (
	"time"

	"github.com/s0up4200/bubblehearth/blizzard"
)

// RealmsIndex is the response of the realm index endpoint.
type RealmsIndex struct {
	Links  blizzard.Links `json:"_links"`
	Realms []Realm        `json:"realms"`
}

// Realm holds realm metadata. Index entries only carry key, name, ID and slug.
type Realm struct {
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

// Item is an item document from the static namespace.
type Item struct {
	ID            int64                    `json:"id"`
	Name          blizzard.LocalizedString `json:"name"`
	Quality       blizzard.TypedName       `json:"quality"`
	Level         int                      `json:"level"`
	RequiredLevel int                      `json:"required_level"`
	ItemClass     blizzard.KeyedName       `json:"item_class"`
	ItemSubclass  blizzard.KeyedName       `json:"item_subclass"`
	InventoryType blizzard.TypedName       `json:"inventory_type"`
	PurchasePrice int64                    `json:"purchase_price"`
	SellPrice     int64                    `json:"sell_price"`
	MaxCount      int                      `json:"max_count"`
	IsEquippable  bool                     `json:"is_equippable"`
	IsStackable   bool                     `json:"is_stackable"`
}

// Character is a character profile summary.
type Character struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Gender             blizzard.TypedName  `json:"gender"`
	Faction            blizzard.TypedName  `json:"faction"`
	Race               blizzard.KeyedName  `json:"race"`
	CharacterClass     blizzard.KeyedName  `json:"character_class"`
	ActiveSpec         *blizzard.KeyedName `json:"active_spec,omitempty"`
	Realm              CharacterRealm      `json:"realm"`
	Guild              *CharacterGuild     `json:"guild,omitempty"`
	Level              int                 `json:"level"`
	Experience         int64               `json:"experience"`
	AchievementPoints  int                 `json:"achievement_points"`
	LastLoginTimestamp int64               `json:"last_login_timestamp"`
	AverageItemLevel   int                 `json:"average_item_level"`
	EquippedItemLevel  int                 `json:"equipped_item_level"`
}

// LastLogin converts LastLoginTimestamp (milliseconds since the epoch).
func (c *Character) LastLogin() time.Time {
	if c.LastLoginTimestamp == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.LastLoginTimestamp)
}

// CharacterRealm is the realm reference embedded in profiles.
type CharacterRealm struct {
	Key  *blizzard.DocumentKey    `json:"key,omitempty"`
	Name blizzard.LocalizedString `json:"name"`
	ID   int64                    `json:"id"`
	Slug string                   `json:"slug"`
}

// CharacterGuild is the guild reference embedded in profiles.
type CharacterGuild struct {
	Key     *blizzard.DocumentKey `json:"key,omitempty"`
	Name    string                `json:"name"`
	ID      int64                 `json:"id"`
	Realm   CharacterRealm        `json:"realm"`
	Faction blizzard.TypedName    `json:"faction"`
}
