package shopping

import (
	"context"
	"errors"
	"sync"

	"mealmash/internal/match"
	"mealmash/internal/quantity"
)

// Reconciler merges a recipe's missing ingredients into a user's shopping
// list: existing open rows with the same name get their quantities merged,
// everything else is inserted. The underlying lookup-then-write per
// ingredient is racy on its own, so reconcile batches are serialized per
// owner; the storage layer's unique open-item index backstops anything that
// slips through (a losing insert is retried as a merge).
type Reconciler struct {
	repo  *Repository
	locks sync.Map // ownerID -> *sync.Mutex
}

// NewReconciler creates a Reconciler over the given repository.
func NewReconciler(repo *Repository) *Reconciler {
	return &Reconciler{repo: repo}
}

// ItemResult reports the outcome for one missing ingredient: merged into an
// existing row, inserted fresh, or failed. Failures never abort the batch;
// the caller sees exactly which items need a retry.
type ItemResult struct {
	Name   string
	Merged bool
	Err    error
}

// Reconcile upserts each missing ingredient into the owner's shopping list.
// Running it again with the same input converges: the second pass finds the
// rows the first one inserted and merges instead of duplicating.
func (rc *Reconciler) Reconcile(ctx context.Context, ownerID string, missing []match.Requirement) []ItemResult {
	mu, _ := rc.locks.LoadOrStore(ownerID, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()

	results := make([]ItemResult, 0, len(missing))
	for _, req := range missing {
		res := ItemResult{Name: req.Name}
		res.Merged, res.Err = rc.upsertOne(ctx, ownerID, req)
		results = append(results, res)
	}
	return results
}

func (rc *Reconciler) upsertOne(ctx context.Context, ownerID string, req match.Requirement) (merged bool, err error) {
	// Two passes: if our insert loses a race against a concurrent insert of
	// the same item name, the unique index rejects it and the second pass
	// merges into the winner's row.
	for attempt := 0; attempt < 2; attempt++ {
		existing, err := rc.repo.FindUnchecked(ctx, ownerID, req.Name)
		if err != nil {
			return false, err
		}

		if existing != nil {
			mergedQty := quantity.AddStrings(existing.Quantity, defaultQty(req.Quantity))
			if err := rc.repo.UpdateQuantity(ctx, existing.ID, mergedQty); err != nil {
				return false, err
			}
			return true, nil
		}

		_, err = rc.repo.Insert(ctx, Item{
			UserID:       ownerID,
			ItemName:     req.Name,
			Quantity:     defaultQty(req.Quantity),
			IngredientID: req.IngredientID,
		})
		if err == nil {
			return false, nil
		}
		if !errors.Is(err, ErrDuplicateOpenItem) {
			return false, err
		}
	}
	return false, ErrDuplicateOpenItem
}

func defaultQty(q string) string {
	if q == "" {
		return "1"
	}
	return q
}
