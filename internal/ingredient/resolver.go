package ingredient

import (
	"context"

	"mealmash/internal/match"
)

// DefaultResolveThreshold is the minimum similarity for a fuzzy catalog hit.
const DefaultResolveThreshold = 0.82

// Resolver maps free-text item names onto catalog entries, so pantry rows
// typed by hand can still get an exact catalog link. An exact normalized
// name or alias hit wins immediately; otherwise the closest entry by
// levenshtein similarity is taken when it clears the threshold. Below the
// threshold nothing is returned — the row simply stays uncatalogued and the
// matching engine falls back to text heuristics for it.
type Resolver struct {
	repo      *Repository
	threshold float64
}

// NewResolver creates a Resolver. A non-positive threshold selects
// DefaultResolveThreshold.
func NewResolver(repo *Repository, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultResolveThreshold
	}
	return &Resolver{repo: repo, threshold: threshold}
}

// Resolve finds the best-matching enabled catalog entry for a raw name.
// Returns (nil, nil) when no entry is confident enough.
func (r *Resolver) Resolve(ctx context.Context, rawName string) (*Ingredient, error) {
	normalized := match.Normalize(rawName)
	if normalized == "" {
		return nil, nil
	}

	all, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var best *Ingredient
	bestScore := -1.0
	for i := range all {
		ing := all[i]
		if match.Normalize(ing.Name) == normalized {
			return &ing, nil
		}
		score := similarity(normalized, match.Normalize(ing.Name))

		for _, alias := range ing.Aliases {
			aliasNorm := match.Normalize(alias)
			if aliasNorm == normalized {
				return &ing, nil
			}
			if s := similarity(normalized, aliasNorm); s > score {
				score = s
			}
		}

		if score > bestScore {
			bestScore = score
			best = &all[i]
		}
	}

	if best == nil || bestScore < r.threshold {
		return nil, nil
	}
	return best, nil
}
