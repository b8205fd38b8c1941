// Package filter narrows API results with expr-lang boolean expressions.
//
// Each result type is exposed to expressions as a Subject: realms provide
// Name, Slug, Timezone, Type and friends; cards provide ManaCost, Attack,
// Health and the hasKeyword and inClass helpers. Example expressions:
//
//	Timezone == "America/New_York" and Type == "PVP"
//	ManaCost <= 2 and hasKeyword(8)
//	containsFold(Name, "moon")
//
// Named presets are kept by a Manager and resolved by name or expression.
package filter
