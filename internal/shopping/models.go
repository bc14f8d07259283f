package shopping

import "time"

// Item is one row on a user's shopping list. IsChecked marks purchased
// items; unchecked rows are the "open" list the reconciler merges into.
type Item struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ItemName     string    `json:"item_name"`
	Quantity     string    `json:"quantity"`
	IsChecked    bool      `json:"is_checked"`
	IngredientID string    `json:"ingredient_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
