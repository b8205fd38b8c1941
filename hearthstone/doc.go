// Package hearthstone provides access to the Hearthstone card APIs.
//
// Searches are described with a CardSearchQuery, usually assembled with the
// fluent CardSearchQueryBuilder:
//
//	query, err := hearthstone.NewCardSearchQueryBuilder().
//		WithClass("mage").
//		WithManaCost(1, 2).
//		WithSort("manaCost", "asc").
//		Build()
//	if err != nil {
//		return err
//	}
//	page, err := hearthstone.New(client).SearchCards(ctx, query)
//
// SearchAllCards walks every page of a search, fetching pages concurrently.
package hearthstone
