// Package favorites maintains each user's set of favorited recipe IDs.
package favorites

import (
	"context"
	"log"

	"recipeshare/internal/recipe"
)

// Service is the favorites adapter the presentation layer talks to.
type Service struct {
	store Store
}

// NewService creates a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListFavoriteIDs returns the set of recipe IDs the user has favorited.
// A fetch failure is logged and degrades to an empty set.
func (s *Service) ListFavoriteIDs(ctx context.Context, userID string) map[string]bool {
	ids, err := s.store.ListIDs(ctx, userID)
	if err != nil {
		log.Printf("Failed to fetch favorites for user %s: %v", userID, err)
		return map[string]bool{}
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Toggle flips the favorite state for (userID, recipeID) and reports the
// resulting state. It reads current membership, then performs the opposite
// write. The check-then-act pair is not transactional: two concurrent
// toggles for the same pair can interleave and leave the stored state
// inconsistent with one tab's last click. Known race, accepted as best
// effort; a single atomic upsert/delete at the store would close it.
func (s *Service) Toggle(ctx context.Context, userID, recipeID string) (bool, error) {
	if userID == "" {
		return false, recipe.ErrNotAuthenticated
	}

	favorited, err := s.store.Exists(ctx, userID, recipeID)
	if err != nil {
		return false, recipe.NewStoreError("failed to check favorite status", err)
	}

	if favorited {
		if err := s.store.Delete(ctx, userID, recipeID); err != nil {
			return false, recipe.NewStoreError("failed to remove favorite", err)
		}
		return false, nil
	}

	if err := s.store.Insert(ctx, userID, recipeID); err != nil {
		return false, recipe.NewStoreError("failed to add favorite", err)
	}
	return true, nil
}
