package filter

import (
	"slices"

	"github.com/s0up4200/bubblehearth/classic"
	"github.com/s0up4200/bubblehearth/hearthstone"
	"github.com/s0up4200/bubblehearth/wow"
)

// Subject is the evaluation environment of one item: a display name used in
// errors and the variables an expression can reference.
type Subject struct {
	Name string
	Vars map[string]any
}

// ClassicRealm exposes a WoW Classic realm to filter expressions.
//
// Variables: Name, Slug, ID, Category, Locale, Timezone, IsTournament, Type,
// TypeName, Region.
func ClassicRealm(realm classic.Realm) Subject {
	vars := map[string]any{
		"Name":         realm.Name.String(),
		"Slug":         realm.Slug,
		"ID":           realm.ID,
		"Category":     realm.Category.String(),
		"Locale":       realm.Locale,
		"Timezone":     realm.Timezone.String(),
		"IsTournament": realm.IsTournament,
		"Type":         "",
		"TypeName":     "",
		"Region":       "",
	}
	if realm.Type != nil {
		vars["Type"] = realm.Type.Type
		vars["TypeName"] = realm.Type.Name.String()
	}
	if realm.Region != nil {
		vars["Region"] = realm.Region.Name.String()
	}
	return Subject{Name: realm.Slug, Vars: vars}
}

// Realm exposes a retail WoW realm to filter expressions, with the same
// variables as ClassicRealm.
func Realm(realm wow.Realm) Subject {
	return ClassicRealm(classic.Realm{
		Key:          realm.Key,
		Name:         realm.Name,
		ID:           realm.ID,
		Slug:         realm.Slug,
		Category:     realm.Category,
		Locale:       realm.Locale,
		Timezone:     realm.Timezone,
		IsTournament: realm.IsTournament,
		Region:       realm.Region,
		Type:         realm.Type,
	})
}

// Card exposes a Hearthstone card to filter expressions.
//
// Variables: Name, Slug, ID, Text, ManaCost, Attack, Health, ClassID,
// CardSetID, CardTypeID, RarityID, MinionTypeID, Collectible, Artist.
// Helpers: hasKeyword(id), inClass(id).
func Card(card hearthstone.Card) Subject {
	classes := append([]int{card.ClassID}, card.MultiClassIDs...)

	return Subject{
		Name: card.Slug,
		Vars: map[string]any{
			"Name":         card.Name.String(),
			"Slug":         card.Slug,
			"ID":           card.ID,
			"Text":         card.Text.String(),
			"ManaCost":     card.ManaCost,
			"Attack":       card.Attack,
			"Health":       card.Health,
			"ClassID":      card.ClassID,
			"CardSetID":    card.CardSetID,
			"CardTypeID":   card.CardTypeID,
			"RarityID":     card.RarityID,
			"MinionTypeID": card.MinionTypeID,
			"Collectible":  card.IsCollectible(),
			"Artist":       card.ArtistName,
			"hasKeyword": func(id int) bool {
				return slices.Contains(card.KeywordIDs, id)
			},
			"inClass": func(id int) bool {
				return slices.Contains(classes, id)
			},
		},
	}
}
