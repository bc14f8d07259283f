package match

import "sort"

// Mode selects the admission threshold and sort key for suggestions.
//
// The two modes are inherited from the two generations of the matching
// logic and are intentionally inconsistent: ModeFraction admits on match
// percentage and is resolution-independent, while ModeCount admits on an
// absolute number of matched ingredients, which favors long ingredient
// lists. Neither generation ever reconciled them, so the choice is left to
// configuration instead of being decided here.
type Mode string

const (
	// ModeFraction admits recipes whose match percentage clears MinPercent
	// and sorts by percentage.
	ModeFraction Mode = "fraction"
	// ModeCount admits recipes with at least MinCount matched ingredients
	// and sorts by matched count.
	ModeCount Mode = "count"
)

// Options configures the suggestion ranker.
type Options struct {
	Mode       Mode
	MinPercent int
	MinCount   int
}

// DefaultOptions returns the historical defaults: 50% in fraction mode,
// 3 matched ingredients in count mode.
func DefaultOptions() Options {
	return Options{Mode: ModeFraction, MinPercent: 50, MinCount: 3}
}

// Candidate is one recipe offered to the ranker. Key is the caller's
// identifier (typically the recipe id) used to join results back. Catalog
// marks recipes that carry structured ingredient rows; those are scored with
// the exact catalog strategy, everything else falls back to text matching.
type Candidate struct {
	Key          string
	Requirements []Requirement
	Catalog      bool
}

// Suggestion is an admitted recipe with its score.
type Suggestion struct {
	Key   string
	Score Score
}

// Suggest scores every candidate against the pantry snapshot, drops recipes
// with no scoreable requirements, applies the admission threshold and returns
// the survivors ordered by descending completeness. The sort is stable, so
// output order is deterministic for identical input.
func Suggest(candidates []Candidate, snapshot []PantryItem, opts Options) []Suggestion {
	catalogStrat := NewCatalogStrategy(snapshot)
	textStrat := NewTextStrategy(snapshot)

	var out []Suggestion
	for _, cand := range candidates {
		var strat Strategy = textStrat
		if cand.Catalog {
			strat = catalogStrat
		}

		score, ok := ScoreRecipe(cand.Requirements, strat)
		if !ok {
			continue
		}
		if !opts.admits(score) {
			continue
		}
		out = append(out, Suggestion{Key: cand.Key, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if opts.Mode == ModeCount {
			return out[i].Score.MatchedCount > out[j].Score.MatchedCount
		}
		return out[i].Score.Percent() > out[j].Score.Percent()
	})
	return out
}

func (o Options) admits(s Score) bool {
	if o.Mode == ModeCount {
		return s.MatchedCount >= o.MinCount
	}
	return s.Percent() >= o.MinPercent
}
