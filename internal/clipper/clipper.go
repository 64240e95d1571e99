// Package clipper imports recipes from external web pages. It fetches the
// page and reads the schema.org Recipe JSON-LD most cooking sites embed,
// producing a prefilled submission input. Extraction is best effort: fields
// the page doesn't declare stay zero and the form layer asks the user.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"recipeshare/internal/recipe"
)

// Clipper fetches and extracts recipes from URLs.
type Clipper struct {
	httpClient *http.Client
}

// NewClipper creates a new Clipper instance.
func NewClipper() *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a recipe submission input from its
// structured data.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Input, error) {
	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	input, ok := extractFromJSONLD(doc)
	if !ok {
		return nil, fmt.Errorf("no recipe structured data found at %s", url)
	}
	return input, nil
}

func (c *Clipper) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// ldRecipe mirrors the schema.org Recipe fields we care about. Sites are
// sloppy with types, so several fields decode through json.RawMessage.
type ldRecipe struct {
	Type               json.RawMessage   `json:"@type"`
	Graph              []json.RawMessage `json:"@graph"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	Image              json.RawMessage   `json:"image"`
	RecipeCuisine      json.RawMessage   `json:"recipeCuisine"`
	RecipeIngredient   []string          `json:"recipeIngredient"`
	RecipeInstructions json.RawMessage   `json:"recipeInstructions"`
	PrepTime           string            `json:"prepTime"`
	CookTime           string            `json:"cookTime"`
	RecipeYield        json.RawMessage   `json:"recipeYield"`
}

func extractFromJSONLD(doc *goquery.Document) (*recipe.Input, bool) {
	var found *ldRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if r := parseLDBlock([]byte(s.Text())); r != nil {
			found = r
			return false
		}
		return true
	})
	if found == nil {
		return nil, false
	}

	return &recipe.Input{
		Title:        found.Name,
		Description:  found.Description,
		ImageURL:     firstString(found.Image),
		Cuisine:      firstString(found.RecipeCuisine),
		Ingredients:  found.RecipeIngredient,
		Instructions: instructionSteps(found.RecipeInstructions),
		PrepTime:     parseISODurationMinutes(found.PrepTime),
		CookTime:     parseISODurationMinutes(found.CookTime),
		Servings:     parseYield(found.RecipeYield),
	}, true
}

// parseLDBlock digs a Recipe node out of a JSON-LD block, which may be a
// single object, a top-level array, or an @graph wrapper.
func parseLDBlock(data []byte) *ldRecipe {
	var nodes []json.RawMessage

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if json.Unmarshal(data, &nodes) != nil {
			return nil
		}
	} else {
		nodes = []json.RawMessage{json.RawMessage(data)}
	}

	for _, node := range nodes {
		var r ldRecipe
		if json.Unmarshal(node, &r) != nil {
			continue
		}
		if isRecipeType(r.Type) && r.Name != "" {
			return &r
		}
		for _, g := range r.Graph {
			var gr ldRecipe
			if json.Unmarshal(g, &gr) == nil && isRecipeType(gr.Type) && gr.Name != "" {
				return &gr
			}
		}
	}
	return nil
}

// isRecipeType handles "@type": "Recipe" as well as the array form.
func isRecipeType(raw json.RawMessage) bool {
	var single string
	if json.Unmarshal(raw, &single) == nil {
		return single == "Recipe"
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		for _, t := range many {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// firstString pulls a usable string out of a value that may be a string, an
// array of strings, or an object with a url/name field.
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return firstString(list[0])
	}
	var obj struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		if obj.URL != "" {
			return obj.URL
		}
		return obj.Name
	}
	return ""
}

// instructionSteps flattens recipeInstructions, which may be plain strings,
// HowToStep objects, or HowToSection objects wrapping steps.
func instructionSteps(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if json.Unmarshal(raw, &single) == nil {
		return []string{single}
	}

	var list []json.RawMessage
	if json.Unmarshal(raw, &list) != nil {
		return nil
	}

	var steps []string
	for _, item := range list {
		var text string
		if json.Unmarshal(item, &text) == nil {
			steps = append(steps, text)
			continue
		}
		var step struct {
			Text         string          `json:"text"`
			Name         string          `json:"name"`
			ItemListElem json.RawMessage `json:"itemListElement"`
		}
		if json.Unmarshal(item, &step) != nil {
			continue
		}
		switch {
		case step.Text != "":
			steps = append(steps, step.Text)
		case len(step.ItemListElem) > 0:
			steps = append(steps, instructionSteps(step.ItemListElem)...)
		case step.Name != "":
			steps = append(steps, step.Name)
		}
	}
	return steps
}

var isoDurationRegexp = regexp.MustCompile(`^P(?:(\d+)D)?T?(?:(\d+)H)?(?:(\d+)M)?`)

// parseISODurationMinutes converts an ISO 8601 duration like "PT1H30M" to
// whole minutes. Unparseable input yields 0.
func parseISODurationMinutes(s string) int {
	m := isoDurationRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0
	}
	days, _ := strconv.Atoi(m[1])
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	return days*24*60 + hours*60 + minutes
}

var leadingIntRegexp = regexp.MustCompile(`\d+`)

// parseYield reads recipeYield, which may be a number, a string like
// "4 servings", or an array of either.
func parseYield(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if json.Unmarshal(raw, &n) == nil {
		return n
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if match := leadingIntRegexp.FindString(s); match != "" {
			v, _ := strconv.Atoi(match)
			return v
		}
		return 0
	}
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil && len(list) > 0 {
		return parseYield(list[0])
	}
	return 0
}
