package recipe

import "time"

// Difficulty levels a recipe may declare.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Recipe is the application-facing recipe record. Storage uses snake_case
// column names; the repository maps between the two.
type Recipe struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"imageUrl"`
	Cuisine      string    `json:"cuisine"`
	Difficulty   string    `json:"difficulty"`
	Description  string    `json:"description"`
	Ingredients  []string  `json:"ingredients"`
	Instructions []string  `json:"instructions"`
	PrepTime     int       `json:"prepTime"` // minutes
	CookTime     int       `json:"cookTime"` // minutes
	Servings     int       `json:"servings"`
	OwnerID      string    `json:"ownerId,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
}

// Input carries the fields a user submits when creating a recipe. The store
// adapter passes these through unvalidated; business-rule checks (non-empty
// title, positive times) belong to the form layer.
type Input struct {
	Title        string   `json:"title"`
	ImageURL     string   `json:"imageUrl"`
	Cuisine      string   `json:"cuisine"`
	Difficulty   string   `json:"difficulty"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     int      `json:"prepTime"`
	CookTime     int      `json:"cookTime"`
	Servings     int      `json:"servings"`
}
