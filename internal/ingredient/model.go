package ingredient

import (
	"fmt"
	"time"
)

// Category is the fixed set of catalog categories.
type Category string

const (
	CategoryProduce    Category = "Produce"
	CategoryDairy      Category = "Dairy"
	CategoryMeat       Category = "Meat"
	CategorySeafood    Category = "Seafood"
	CategoryGrains     Category = "Grains"
	CategorySpices     Category = "Spices"
	CategoryCondiments Category = "Condiments"
	CategoryFrozen     Category = "Frozen"
	CategoryCanned     Category = "Canned"
	CategoryOther      Category = "Other"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryProduce, CategoryDairy, CategoryMeat, CategorySeafood,
		CategoryGrains, CategorySpices, CategoryCondiments, CategoryFrozen,
		CategoryCanned, CategoryOther,
	}
}

// ParseCategory validates a category label.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown ingredient category %q", s)
}

// Ingredient is a canonical catalog entry for a food item. Entries are never
// hard-deleted; flagged ones are disabled and drop out of search.
type Ingredient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  Category  `json:"category"`
	Aliases   []string  `json:"aliases"`
	IsEnabled bool      `json:"is_enabled"`
	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
