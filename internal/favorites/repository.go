package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store is the remote favorites surface the Service consumes.
type Store interface {
	ListIDs(ctx context.Context, userID string) ([]string, error)
	Exists(ctx context.Context, userID, recipeID string) (bool, error)
	Insert(ctx context.Context, userID, recipeID string) error
	Delete(ctx context.Context, userID, recipeID string) error
}

// Repository persists (user, recipe) favorite pairs. The table carries a
// unique index on (user_id, recipe_id), matching the remote schema.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new favorites Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListIDs returns all recipe IDs favorited by a user, oldest favorite first.
func (r *Repository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT recipe_id FROM favorites WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorite rows: %w", err)
	}
	return ids, nil
}

// Exists reports whether the user has favorited the recipe.
func (r *Repository) Exists(ctx context.Context, userID, recipeID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE user_id = ? AND recipe_id = ?`,
		userID, recipeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return true, nil
}

// Insert adds a favorite. INSERT OR IGNORE makes a duplicate pair a success
// rather than a unique-constraint error: adding is idempotent.
func (r *Repository) Insert(ctx context.Context, userID, recipeID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
		userID, recipeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

// Delete removes a favorite. Removing an absent pair is a no-op.
func (r *Repository) Delete(ctx context.Context, userID, recipeID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}
