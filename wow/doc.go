// Package wow provides access to the retail World of Warcraft game data and
// profile APIs: realms, items and character profile summaries.
package wow
