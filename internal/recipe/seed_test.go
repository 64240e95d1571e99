package recipe

import "testing"

func TestSeedCatalog(t *testing.T) {
	seeds := SeedRecipes()

	if len(seeds) != 6 {
		t.Fatalf("Expected 6 seed recipes, got %d", len(seeds))
	}

	for i, s := range seeds {
		wantID := string(rune('1' + i))
		if s.ID != wantID {
			t.Errorf("Seed %d: expected ID %q, got %q", i, wantID, s.ID)
		}
		if s.OwnerID != "" {
			t.Errorf("Seed %q must be unowned, got owner %q", s.ID, s.OwnerID)
		}
		if len(s.Ingredients) == 0 {
			t.Errorf("Seed %q has no ingredients", s.ID)
		}
		if len(s.Instructions) == 0 {
			t.Errorf("Seed %q has no instructions", s.ID)
		}
		if s.Servings < 1 {
			t.Errorf("Seed %q has servings %d", s.ID, s.Servings)
		}
	}

	if seeds[0].Title != "Classic Margherita Pizza" || seeds[5].Title != "French Onion Soup" {
		t.Errorf("Seed order changed: first %q, last %q", seeds[0].Title, seeds[5].Title)
	}
}

func TestIsSeedID(t *testing.T) {
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		if !IsSeedID(id) {
			t.Errorf("Expected %q to be a seed ID", id)
		}
	}
	for _, id := range []string{"", "0", "7", "user-123", "abc"} {
		if IsSeedID(id) {
			t.Errorf("Expected %q to not be a seed ID", id)
		}
	}
}

func TestSeedRecipesReturnsCopy(t *testing.T) {
	first := SeedRecipes()
	first[0].Title = "clobbered"
	if SeedRecipes()[0].Title != "Classic Margherita Pizza" {
		t.Error("Mutating the returned slice leaked into the seed catalog")
	}
}
