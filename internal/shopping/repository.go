package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"mealmash/internal/pantry"
)

// ErrDuplicateOpenItem is returned when an insert collides with the
// one-open-row-per-item-name-per-user index; the caller retries as a merge.
var ErrDuplicateOpenItem = errors.New("open shopping-list item already exists")

// Repository handles persistence of shopping-list items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping-list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListByOwner returns the owner's list, open items first, newest first
// within each group.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, item_name, quantity, is_checked, ingredient_id, created_at
		 FROM shopping_list WHERE user_id = ?
		 ORDER BY is_checked, created_at DESC, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindUnchecked looks up the owner's open row with the given item name,
// case-insensitively. Returns (nil, nil) when there is none.
func (r *Repository) FindUnchecked(ctx context.Context, ownerID, name string) (*Item, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, item_name, quantity, is_checked, ingredient_id, created_at
		 FROM shopping_list
		 WHERE user_id = ? AND is_checked = 0 AND item_name = ? COLLATE NOCASE`,
		ownerID, name)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find shopping item: %w", err)
	}
	return it, nil
}

// Insert adds a new row. An empty quantity defaults to "1". A collision on
// the open-item index surfaces as ErrDuplicateOpenItem.
func (r *Repository) Insert(ctx context.Context, it Item) (*Item, error) {
	if strings.TrimSpace(it.ItemName) == "" {
		return nil, fmt.Errorf("shopping item name is required")
	}
	if it.UserID == "" {
		return nil, fmt.Errorf("shopping item owner is required")
	}

	it.ID = uuid.NewString()
	it.ItemName = strings.TrimSpace(it.ItemName)
	if strings.TrimSpace(it.Quantity) == "" {
		it.Quantity = "1"
	}
	it.CreatedAt = time.Now().UTC()

	var ingredientID any
	if it.IngredientID != "" {
		ingredientID = it.IngredientID
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_list (id, user_id, item_name, quantity, is_checked, ingredient_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.UserID, it.ItemName, it.Quantity, boolToInt(it.IsChecked), ingredientID, it.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateOpenItem
		}
		return nil, fmt.Errorf("failed to insert shopping item: %w", err)
	}
	return &it, nil
}

// UpdateQuantity replaces the quantity string of a row.
func (r *Repository) UpdateQuantity(ctx context.Context, id, newQuantity string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shopping_list SET quantity = ? WHERE id = ?`, newQuantity, id)
	if err != nil {
		return fmt.Errorf("failed to update shopping quantity: %w", err)
	}
	return requireRow(res, id)
}

// SetChecked toggles the purchased flag of an owned row.
func (r *Repository) SetChecked(ctx context.Context, ownerID, id string, checked bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE shopping_list SET is_checked = ? WHERE id = ? AND user_id = ?`,
		boolToInt(checked), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update shopping item: %w", err)
	}
	return requireRow(res, id)
}

// Delete removes an owned row.
func (r *Repository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_list WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	return requireRow(res, id)
}

// ClearChecked removes all purchased rows for the owner and returns how
// many were removed.
func (r *Repository) ClearChecked(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_list WHERE user_id = ? AND is_checked = 1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear checked items: %w", err)
	}
	return res.RowsAffected()
}

// MoveCheckedToPantry moves each purchased row into the owner's pantry and
// deletes it. Rows are processed one at a time; a failure on one row leaves
// the rest of the batch untouched and is reported per item so the caller
// can retry just the failures.
func (r *Repository) MoveCheckedToPantry(ctx context.Context, ownerID string, pantryRepo *pantry.Repository) []MoveResult {
	items, err := r.ListByOwner(ctx, ownerID)
	if err != nil {
		return []MoveResult{{Err: err}}
	}

	var results []MoveResult
	for _, it := range items {
		if !it.IsChecked {
			continue
		}
		res := MoveResult{ItemName: it.ItemName}
		if err := pantryRepo.Upsert(ctx, ownerID, it.IngredientID, it.ItemName, "", it.Quantity); err != nil {
			res.Err = fmt.Errorf("failed to move %q to pantry: %w", it.ItemName, err)
		} else if err := r.Delete(ctx, ownerID, it.ID); err != nil {
			res.Err = fmt.Errorf("moved %q but failed to remove it from the list: %w", it.ItemName, err)
		}
		results = append(results, res)
	}
	return results
}

// MoveResult reports the outcome of moving one purchased row to the pantry.
type MoveResult struct {
	ItemName string
	Err      error
}

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var (
		it      Item
		checked int
		ingID   sql.NullString
	)
	if err := row.Scan(&it.ID, &it.UserID, &it.ItemName, &it.Quantity, &checked, &ingID, &it.CreatedAt); err != nil {
		return nil, err
	}
	it.IsChecked = checked != 0
	it.IngredientID = ingID.String
	return &it, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("shopping item %s not found", id)
	}
	return nil
}
