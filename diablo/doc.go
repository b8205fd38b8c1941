// Package diablo provides access to the Diablo III community game data APIs.
package diablo
