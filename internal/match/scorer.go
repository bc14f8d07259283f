package match

import "math"

// Score is the result of matching one recipe against a pantry snapshot. The
// two partitions preserve the recipe's original ingredient order and are
// disjoint; MatchedCount+len(Missing) == TotalCount. Requirements whose
// catalog reference failed to resolve appear in neither partition and do not
// count toward TotalCount.
type Score struct {
	Matched      []Requirement
	Missing      []Requirement
	MatchedCount int
	TotalCount   int
}

// Fraction is the match fraction in [0, 1].
func (s Score) Fraction() float64 {
	if s.TotalCount == 0 {
		return 0
	}
	return float64(s.MatchedCount) / float64(s.TotalCount)
}

// Percent is the fraction rounded to a whole percentage, the number the
// legacy display path shows.
func (s Score) Percent() int {
	return int(math.Round(s.Fraction() * 100))
}

// ScoreRecipe partitions a recipe's requirements into matched and missing
// against the given strategy. The second return value is false when the
// recipe has no scoreable requirements; such recipes are not candidates at
// all — neither a zero division nor a 100% match.
func ScoreRecipe(reqs []Requirement, strat Strategy) (Score, bool) {
	var s Score
	for _, req := range reqs {
		if req.Unresolved {
			continue
		}
		s.TotalCount++
		if strat.Matches(req) {
			s.Matched = append(s.Matched, req)
		} else {
			s.Missing = append(s.Missing, req)
		}
	}
	if s.TotalCount == 0 {
		return Score{}, false
	}
	s.MatchedCount = len(s.Matched)
	return s, true
}
