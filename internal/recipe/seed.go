package recipe

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed seed_data.json
var seedData []byte

// seedCatalog holds the six built-in demo recipes in their fixed order.
// They are unowned, undeletable, and appended to every catalog listing.
var seedCatalog = mustLoadSeeds()

func mustLoadSeeds() []Recipe {
	var seeds []Recipe
	if err := json.Unmarshal(seedData, &seeds); err != nil {
		panic(fmt.Sprintf("corrupt embedded seed catalog: %v", err))
	}
	return seeds
}

// SeedRecipes returns a copy of the seed catalog so callers cannot mutate
// the embedded data.
func SeedRecipes() []Recipe {
	out := make([]Recipe, len(seedCatalog))
	copy(out, seedCatalog)
	return out
}

// IsSeedID reports whether id belongs to one of the built-in seed recipes.
// Every special case around seeds (delete guard, lookup priority, list
// ordering) goes through this predicate.
func IsSeedID(id string) bool {
	for _, s := range seedCatalog {
		if s.ID == id {
			return true
		}
	}
	return false
}

func seedByID(id string) (Recipe, bool) {
	for _, s := range seedCatalog {
		if s.ID == id {
			return s, true
		}
	}
	return Recipe{}, false
}
