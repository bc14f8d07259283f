package ingredient

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"mealmash/internal/match"
)

var (
	// ErrExists is returned when an ingredient with the same name already
	// exists in the catalog.
	ErrExists = errors.New("ingredient already exists")
	// ErrRateLimited is returned when a user exceeds the hourly submission
	// allowance.
	ErrRateLimited = errors.New("ingredient submission rate limit exceeded")
)

// Repository handles persistence of catalog ingredients.
type Repository struct {
	db          *sql.DB
	submitLimit int
}

// NewRepository creates a new ingredient repository. submitLimit caps
// catalog submissions per creator per hour; zero disables the check.
func NewRepository(d *sql.DB, submitLimit int) *Repository {
	return &Repository{db: d, submitLimit: submitLimit}
}

// CreateParams carries the attributes of a new catalog entry.
type CreateParams struct {
	Name      string
	Category  Category
	Aliases   []string
	CreatedBy string
}

// Create inserts a new catalog entry. User submissions are rate limited by
// counting the creator's entries over the trailing hour; catalog seeding
// passes an empty CreatedBy and bypasses the check.
func (r *Repository) Create(ctx context.Context, p CreateParams) (*Ingredient, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, fmt.Errorf("ingredient name is required")
	}
	if _, err := ParseCategory(string(p.Category)); err != nil {
		return nil, err
	}

	if p.CreatedBy != "" && r.submitLimit > 0 {
		since := time.Now().UTC().Add(-time.Hour)
		var recent int
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM ingredients WHERE created_by = ? AND created_at > ?`,
			p.CreatedBy, since,
		).Scan(&recent)
		if err != nil {
			return nil, fmt.Errorf("failed to count recent submissions: %w", err)
		}
		if recent >= r.submitLimit {
			return nil, ErrRateLimited
		}
	}

	ing := &Ingredient{
		ID:        uuid.NewString(),
		Name:      name,
		Category:  p.Category,
		Aliases:   p.Aliases,
		IsEnabled: true,
		CreatedBy: p.CreatedBy,
		CreatedAt: time.Now().UTC(),
	}
	if ing.Aliases == nil {
		ing.Aliases = []string{}
	}

	aliasesJSON, err := json.Marshal(ing.Aliases)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aliases: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO ingredients (id, name, category, aliases, is_enabled, created_by, created_at)
		 VALUES (?, ?, ?, ?, 1, ?, ?)`,
		ing.ID, ing.Name, string(ing.Category), string(aliasesJSON), ing.CreatedBy, ing.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrExists
		}
		return nil, fmt.Errorf("failed to insert ingredient: %w", err)
	}
	return ing, nil
}

// GetByID retrieves a catalog entry by id. Returns (nil, nil) when absent.
func (r *Repository) GetByID(ctx context.Context, id string) (*Ingredient, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, category, aliases, is_enabled, created_by, created_at
		 FROM ingredients WHERE id = ?`, id)
	ing, err := scanIngredient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingredient by id: %w", err)
	}
	return ing, nil
}

// GetByIDs retrieves multiple catalog entries keyed by id. Missing ids are
// simply absent from the result; the caller decides how to treat the gap.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) (map[string]Ingredient, error) {
	out := make(map[string]Ingredient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, aliases, is_enabled, created_by, created_at
		 FROM ingredients WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out[ing.ID] = *ing
	}
	return out, rows.Err()
}

// List returns all enabled catalog entries ordered by category then name,
// the order the catalog browse surface shows.
func (r *Repository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, category, aliases, is_enabled, created_by, created_at
		 FROM ingredients WHERE is_enabled = 1 ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out = append(out, *ing)
	}
	return out, rows.Err()
}

// Search finds enabled entries whose name or one of whose aliases contains
// the query, case-insensitively, ranked by similarity to the query. limit
// caps the result; zero or negative means no cap.
func (r *Repository) Search(ctx context.Context, query string, limit int) ([]Ingredient, error) {
	q := match.Normalize(query)
	if q == "" {
		return nil, nil
	}

	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		ing   Ingredient
		score float64
	}
	var hits []ranked
	for _, ing := range all {
		score, ok := searchScore(q, ing)
		if !ok {
			continue
		}
		hits = append(hits, ranked{ing: ing, score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]Ingredient, len(hits))
	for i, h := range hits {
		out[i] = h.ing
	}
	return out, nil
}

// Disable hides a catalog entry from search and matching. Used as the
// flag/spam control; entries are never hard-deleted.
func (r *Repository) Disable(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE ingredients SET is_enabled = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to disable ingredient: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("ingredient %s not found", id)
	}
	return nil
}

// AddAlias appends an alias to an entry unless already present.
func (r *Repository) AddAlias(ctx context.Context, id, alias string) error {
	ing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return fmt.Errorf("ingredient %s not found", id)
	}

	for _, a := range ing.Aliases {
		if strings.EqualFold(a, alias) {
			return nil
		}
	}
	aliasesJSON, err := json.Marshal(append(ing.Aliases, alias))
	if err != nil {
		return fmt.Errorf("failed to marshal aliases: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `UPDATE ingredients SET aliases = ? WHERE id = ?`, string(aliasesJSON), id)
	if err != nil {
		return fmt.Errorf("failed to update aliases: %w", err)
	}
	return nil
}

// searchScore returns a similarity rank for entries that pass the substring
// filter: exact match 1.0, otherwise levenshtein similarity against whichever
// of name/aliases is closest.
func searchScore(normQuery string, ing Ingredient) (float64, bool) {
	best := -1.0
	for _, candidate := range append([]string{ing.Name}, ing.Aliases...) {
		n := match.Normalize(candidate)
		if n == "" || !strings.Contains(n, normQuery) {
			continue
		}
		if s := similarity(normQuery, n); s > best {
			best = s
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// similarity maps levenshtein distance to a 0.0-1.0 score.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIngredient(row rowScanner) (*Ingredient, error) {
	var (
		ing      Ingredient
		category string
		aliases  string
		enabled  int
		creator  sql.NullString
	)
	if err := row.Scan(&ing.ID, &ing.Name, &category, &aliases, &enabled, &creator, &ing.CreatedAt); err != nil {
		return nil, err
	}
	ing.Category = Category(category)
	ing.IsEnabled = enabled != 0
	ing.CreatedBy = creator.String
	if err := json.Unmarshal([]byte(aliases), &ing.Aliases); err != nil {
		// Tolerate corrupt alias blobs; the entry is still usable.
		ing.Aliases = []string{}
	}
	return &ing, nil
}
