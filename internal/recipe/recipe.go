package recipe

import (
	"encoding/json"
	"fmt"
	"time"

	"mealmash/internal/match"
)

// Categories a recipe can belong to.
var Categories = []string{"breakfast", "lunch", "dinner", "snack", "dessert"}

// ValidCategory reports whether s is a known recipe category.
func ValidCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Ingredient is one structured ingredient requirement of a recipe, joined
// with its catalog entry. Name and Category are empty when the catalog
// reference did not resolve; the scorer skips such rows.
type Ingredient struct {
	RecipeID     string `json:"recipe_id"`
	IngredientID string `json:"ingredient_id"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit,omitempty"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Resolved     bool   `json:"-"`
}

// Recipe is a cookable dish. Ingredient requirements come in one of two
// shapes: structured Ingredients rows joined against the catalog (current),
// or the LegacyIngredients free-text blob (older data, scored with the text
// heuristic).
type Recipe struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Instructions      []string        `json:"instructions"`
	PrepTimeMinutes   int             `json:"prep_time_minutes"`
	CookTimeMinutes   int             `json:"cook_time_minutes"`
	Servings          int             `json:"servings"`
	ImageURL          string          `json:"image_url,omitempty"`
	Ingredients       []Ingredient    `json:"recipe_ingredients,omitempty"`
	LegacyIngredients json.RawMessage `json:"ingredients,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// HasCatalogIngredients reports whether the recipe carries structured
// ingredient rows and should be scored with the exact catalog strategy.
func (r *Recipe) HasCatalogIngredients() bool {
	return len(r.Ingredients) > 0
}

// Requirements converts the recipe's ingredient data into the engine's
// requirement list: structured rows when present, legacy free-text
// extraction otherwise.
func (r *Recipe) Requirements() []match.Requirement {
	if r.HasCatalogIngredients() {
		reqs := make([]match.Requirement, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			reqs[i] = match.Requirement{
				IngredientID: ing.IngredientID,
				Name:         ing.Name,
				Category:     ing.Category,
				Quantity:     joinQuantity(ing.Quantity, ing.Unit),
				Unresolved:   !ing.Resolved,
			}
		}
		return reqs
	}

	names := match.IngredientNames(r.LegacyIngredients)
	reqs := make([]match.Requirement, len(names))
	for i, name := range names {
		reqs[i] = match.Requirement{Name: name}
	}
	return reqs
}

func joinQuantity(qty, unit string) string {
	if unit == "" {
		return qty
	}
	if qty == "" {
		return unit
	}
	return fmt.Sprintf("%s %s", qty, unit)
}
