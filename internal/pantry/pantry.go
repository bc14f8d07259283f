// Package pantry tracks the items a user currently has on hand. Quantities
// are free-text by design; rows optionally link to the ingredient catalog,
// which upgrades them from heuristic text matching to exact identity
// matching in the suggestion engine.
package pantry

import (
	"time"

	"mealmash/internal/match"
)

// Item is a quantity of a named item a specific user possesses.
type Item struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     string    `json:"quantity"`
	IngredientID string    `json:"ingredient_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Snapshot projects pantry rows into the view the matching engine consumes.
func Snapshot(items []Item) []match.PantryItem {
	out := make([]match.PantryItem, len(items))
	for i, it := range items {
		out[i] = match.PantryItem{Name: it.Name, IngredientID: it.IngredientID}
	}
	return out
}
