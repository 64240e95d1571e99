// Package catalog derives the visible subset of a recipe list from the
// current search and filter state. Pure and synchronous: no I/O, no
// mutation, same inputs always yield the same output.
package catalog

import (
	"strings"

	"recipeshare/internal/recipe"
)

// All disables the cuisine or difficulty selector.
const All = "all"

// Query is the filter state collected from the page.
type Query struct {
	Search        string
	Cuisine       string
	Difficulty    string
	FavoritesOnly bool
	FavoriteIDs   map[string]bool
	UserPresent   bool
}

// Filter applies the active filters conjunctively, in fixed order:
// favorites-only, then text search, then cuisine, then difficulty. The
// result is a new slice preserving the input's relative order; the final
// set is the same whichever order the filters run in.
func Filter(recipes []recipe.Recipe, q Query) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(recipes))
	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, rec := range recipes {
		if q.FavoritesOnly && q.UserPresent && !q.FavoriteIDs[rec.ID] {
			continue
		}
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		if q.Cuisine != "" && q.Cuisine != All && rec.Cuisine != q.Cuisine {
			continue
		}
		if q.Difficulty != "" && q.Difficulty != All && rec.Difficulty != q.Difficulty {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// matchesSearch reports whether the lower-cased query appears in the title,
// description, or any ingredient.
func matchesSearch(rec recipe.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(rec.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(rec.Description), query) {
		return true
	}
	for _, ing := range rec.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

// Cuisines returns the distinct cuisines present in the list, in first-seen
// order, for populating the cuisine selector.
func Cuisines(recipes []recipe.Recipe) []string {
	seen := make(map[string]bool, len(recipes))
	var out []string
	for _, rec := range recipes {
		if rec.Cuisine == "" || seen[rec.Cuisine] {
			continue
		}
		seen[rec.Cuisine] = true
		out = append(out, rec.Cuisine)
	}
	return out
}
