package match

import "strings"

// PantryItem is the view of a pantry row the engine needs: its free-text name
// and, when the row is linked to the ingredient catalog, the catalog id.
type PantryItem struct {
	Name         string
	IngredientID string
}

// Requirement is one ingredient a recipe calls for. In catalog mode
// IngredientID is set and Name carries the catalog display name; in text mode
// IngredientID is empty and Name is the raw free-text line. Unresolved marks
// a catalog reference that did not resolve to a catalog entry; the scorer
// excludes such rows entirely.
type Requirement struct {
	IngredientID string
	Name         string
	Category     string
	Quantity     string
	Unresolved   bool
}

// Strategy decides whether any item in a pantry snapshot satisfies a single
// recipe requirement. Implementations precompute whatever they need from the
// snapshot once, so a full scoring pass over the catalog stays cheap.
type Strategy interface {
	Matches(req Requirement) bool
}

// CatalogStrategy matches by shared catalog identity. Exact, O(1) per check,
// and immune to the text heuristic's false positives.
type CatalogStrategy struct {
	ids map[string]struct{}
}

// NewCatalogStrategy builds the pantry id set once for the whole pass.
// Pantry rows without a catalog reference do not participate.
func NewCatalogStrategy(snapshot []PantryItem) *CatalogStrategy {
	ids := make(map[string]struct{}, len(snapshot))
	for _, item := range snapshot {
		if item.IngredientID != "" {
			ids[item.IngredientID] = struct{}{}
		}
	}
	return &CatalogStrategy{ids: ids}
}

func (c *CatalogStrategy) Matches(req Requirement) bool {
	if req.IngredientID == "" {
		return false
	}
	_, ok := c.ids[req.IngredientID]
	return ok
}

// TextStrategy matches free-text names with the legacy heuristic: exact
// normalized equality, substring containment, then word overlap on tokens
// longer than two characters. It trades precision for recall — "green onion"
// overlapping "onion" is intentional.
type TextStrategy struct {
	names  []string
	tokens [][]string
}

// NewTextStrategy normalizes and tokenizes the pantry snapshot once.
func NewTextStrategy(snapshot []PantryItem) *TextStrategy {
	t := &TextStrategy{
		names:  make([]string, 0, len(snapshot)),
		tokens: make([][]string, 0, len(snapshot)),
	}
	for _, item := range snapshot {
		n := Normalize(item.Name)
		if n == "" {
			continue
		}
		t.names = append(t.names, n)
		t.tokens = append(t.tokens, meaningfulTokens(n))
	}
	return t
}

func (t *TextStrategy) Matches(req Requirement) bool {
	reqNorm := Normalize(req.Name)
	if reqNorm == "" {
		return false
	}
	reqTokens := meaningfulTokens(reqNorm)
	for i, pantryNorm := range t.names {
		if textMatch(pantryNorm, t.tokens[i], reqNorm, reqTokens) {
			return true
		}
	}
	return false
}

// IsTextMatch reports whether a pantry item name and a recipe's free-text
// ingredient line refer to the same ingredient, per the heuristic above.
// Both inputs are raw; normalization happens here.
func IsTextMatch(pantryName, recipeIngredient string) bool {
	pn := Normalize(pantryName)
	rn := Normalize(recipeIngredient)
	if pn == "" || rn == "" {
		return false
	}
	return textMatch(pn, meaningfulTokens(pn), rn, meaningfulTokens(rn))
}

func textMatch(pantryNorm string, pantryTokens []string, reqNorm string, reqTokens []string) bool {
	if pantryNorm == reqNorm {
		return true
	}
	if strings.Contains(pantryNorm, reqNorm) || strings.Contains(reqNorm, pantryNorm) {
		return true
	}
	for _, pw := range pantryTokens {
		for _, rw := range reqTokens {
			if pw == rw || strings.Contains(pw, rw) || strings.Contains(rw, pw) {
				return true
			}
		}
	}
	return false
}
