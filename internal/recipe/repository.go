package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Source is the remote-store surface the Store adapter consumes. Repository
// is the production implementation; tests substitute failing fakes.
type Source interface {
	ListAll(ctx context.Context) ([]Recipe, error)
	GetByID(ctx context.Context, id string) (*Recipe, error)
	Insert(ctx context.Context, rec Recipe) (*Recipe, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Repository is the database-backed recipe store.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const recipeColumns = `id, user_id, title, description, image_url, cuisine,
	difficulty, prep_time, cook_time, servings, ingredients, instructions, created_at`

// recipeRow mirrors the storage schema (snake_case columns, JSON-encoded
// list fields) before normalization into the application Recipe.
type recipeRow struct {
	ID           string
	UserID       sql.NullString
	Title        string
	Description  string
	ImageURL     string
	Cuisine      string
	Difficulty   string
	PrepTime     int64
	CookTime     int64
	Servings     int64
	Ingredients  string
	Instructions string
	CreatedAt    time.Time
}

func (r recipeRow) toRecipe() (Recipe, error) {
	var ingredients, instructions []string
	if err := json.Unmarshal([]byte(r.Ingredients), &ingredients); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal ingredients for recipe %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(r.Instructions), &instructions); err != nil {
		return Recipe{}, fmt.Errorf("failed to unmarshal instructions for recipe %s: %w", r.ID, err)
	}
	return Recipe{
		ID:           r.ID,
		Title:        r.Title,
		ImageURL:     r.ImageURL,
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
		Description:  r.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     int(r.PrepTime),
		CookTime:     int(r.CookTime),
		Servings:     int(r.Servings),
		OwnerID:      r.UserID.String,
		CreatedAt:    r.CreatedAt,
	}, nil
}

func scanRecipe(scan func(dest ...any) error) (Recipe, error) {
	var row recipeRow
	err := scan(
		&row.ID, &row.UserID, &row.Title, &row.Description, &row.ImageURL,
		&row.Cuisine, &row.Difficulty, &row.PrepTime, &row.CookTime,
		&row.Servings, &row.Ingredients, &row.Instructions, &row.CreatedAt,
	)
	if err != nil {
		return Recipe{}, err
	}
	return row.toRecipe()
}

// ListAll retrieves every stored recipe, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe rows: %w", err)
	}
	return recipes, nil
}

// GetByID retrieves a recipe by primary key. A miss returns (nil, nil).
func (r *Repository) GetByID(ctx context.Context, id string) (*Recipe, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id)
	rec, err := scanRecipe(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}
	return &rec, nil
}

// Insert stores a new recipe row and returns it as persisted.
func (r *Repository) Insert(ctx context.Context, rec Recipe) (*Recipe, error) {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	instructions, err := json.Marshal(rec.Instructions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal instructions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO recipes (`+recipeColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, sql.NullString{String: rec.OwnerID, Valid: rec.OwnerID != ""},
		rec.Title, rec.Description, rec.ImageURL, rec.Cuisine, rec.Difficulty,
		rec.PrepTime, rec.CookTime, rec.Servings,
		string(ingredients), string(instructions), rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert recipe: %w", err)
	}

	// Read the row back so the caller gets exactly what the store holds.
	return r.GetByID(ctx, rec.ID)
}

// Delete removes a recipe, scoped to rows matching both id and owner.
// Zero rows affected is not an error: a mismatched owner is a silent no-op.
func (r *Repository) Delete(ctx context.Context, id, ownerID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}
