package recipe

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Store is the catalog adapter the presentation layer talks to. It layers
// the seed-catalog rules and the read-path degrade policy over a Source.
// Every remote call is attempted exactly once; there are no retries.
type Store struct {
	source Source
}

// NewStore creates a Store over the given source.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// ListAll returns the full catalog: stored recipes newest-first, followed by
// the six seed recipes in their fixed order. A fetch failure is logged and
// degrades to the seed catalog alone so the page always renders.
func (s *Store) ListAll(ctx context.Context) []Recipe {
	stored, err := s.source.ListAll(ctx)
	if err != nil {
		log.Printf("Failed to fetch recipes, falling back to seed catalog: %v", err)
		return SeedRecipes()
	}
	return append(stored, SeedRecipes()...)
}

// GetByID looks up a recipe, checking the seed catalog before the store.
// Misses and fetch errors both come back as (zero, false); errors are logged,
// never surfaced.
func (s *Store) GetByID(ctx context.Context, id string) (Recipe, bool) {
	if seed, ok := seedByID(id); ok {
		return seed, true
	}
	rec, err := s.source.GetByID(ctx, id)
	if err != nil {
		log.Printf("Failed to fetch recipe %s: %v", id, err)
		return Recipe{}, false
	}
	if rec == nil {
		return Recipe{}, false
	}
	return *rec, true
}

// Create inserts a new recipe owned by ownerID. Input fields are passed
// through as-is; business-rule validation is the form layer's job.
func (s *Store) Create(ctx context.Context, input Input, ownerID string) (Recipe, error) {
	if ownerID == "" {
		return Recipe{}, ErrNotAuthenticated
	}

	rec := Recipe{
		ID:           uuid.NewString(),
		Title:        input.Title,
		ImageURL:     input.ImageURL,
		Cuisine:      input.Cuisine,
		Difficulty:   input.Difficulty,
		Description:  input.Description,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     input.Servings,
		OwnerID:      ownerID,
		CreatedAt:    time.Now().UTC(),
	}

	inserted, err := s.source.Insert(ctx, rec)
	if err != nil {
		return Recipe{}, NewStoreError("failed to add recipe", err)
	}
	if inserted == nil {
		return Recipe{}, NewStoreError("no data returned from insert", nil)
	}
	return *inserted, nil
}

// Remove deletes a recipe. Seed recipes can never be deleted, by anyone.
// The delete is scoped to (id, ownerID); if the row belongs to someone else
// zero rows are affected and the call still succeeds. That silent no-op
// matches the remote store's row-level security behavior and is deliberate.
func (s *Store) Remove(ctx context.Context, id, ownerID string) error {
	if ownerID == "" {
		return ErrNotAuthenticated
	}
	if IsSeedID(id) {
		return ErrForbidden
	}
	if err := s.source.Delete(ctx, id, ownerID); err != nil {
		return NewStoreError("failed to delete recipe", err)
	}
	return nil
}
