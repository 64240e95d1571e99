package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"recipeshare/internal/auth"
	"recipeshare/internal/clipper"
	"recipeshare/internal/database"
	"recipeshare/internal/favorites"
	"recipeshare/internal/recipe"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := New(
		recipe.NewStore(recipe.NewRepository(db.SQL)),
		favorites.NewService(favorites.NewRepository(db.SQL)),
		auth.NewService(auth.NewRepository(db.SQL), []byte("test-secret")),
		clipper.NewClipper(),
	)
	ts := httptest.NewServer(srv.Handler([]string{"*"}))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func signUp(t *testing.T, ts *httptest.Server, name, email string) (string, *auth.User) {
	t.Helper()
	resp := doJSON(t, "POST", ts.URL+"/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": "secret1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Sign-up returned status %d", resp.StatusCode)
	}
	session := decode[sessionResponse](t, resp)
	return session.Token, session.User
}

func TestListRecipesSignedOut(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/recipes", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	recipes := decode[[]recipe.Recipe](t, resp)
	if len(recipes) != 6 {
		t.Errorf("Expected the 6 seed recipes on an empty store, got %d", len(recipes))
	}
}

func TestListRecipesFilters(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/recipes?cuisine=Italian&difficulty=Medium", "", nil)
	recipes := decode[[]recipe.Recipe](t, resp)
	if len(recipes) != 1 || recipes[0].Title != "Classic Margherita Pizza" {
		t.Errorf("Expected only Classic Margherita Pizza, got %+v", recipes)
	}
}

func TestCreateListDeleteRecipe(t *testing.T) {
	ts := newTestServer(t)
	token, user := signUp(t, ts, "Ana", "ana@example.com")

	input := recipe.Input{
		Title:        "Shakshuka",
		Cuisine:      "Middle Eastern",
		Difficulty:   "Easy",
		Ingredients:  []string{"6 eggs"},
		Instructions: []string{"Simmer.", "Serve."},
		Servings:     2,
	}

	t.Run("RequiresAuth", func(t *testing.T) {
		resp := doJSON(t, "POST", ts.URL+"/recipes", "", input)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	resp := doJSON(t, "POST", ts.URL+"/recipes", token, input)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", resp.StatusCode)
	}
	created := decode[recipe.Recipe](t, resp)
	if created.OwnerID != user.ID {
		t.Errorf("Expected owner %s, got %s", user.ID, created.OwnerID)
	}

	t.Run("NewRecipeListedBeforeSeeds", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/recipes", "", nil)
		recipes := decode[[]recipe.Recipe](t, resp)
		if len(recipes) != 7 {
			t.Fatalf("Expected 7 recipes, got %d", len(recipes))
		}
		if recipes[0].ID != created.ID {
			t.Errorf("Expected the new recipe first, got %q", recipes[0].ID)
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/recipes/"+created.ID, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		got := decode[recipe.Recipe](t, resp)
		if got.Title != "Shakshuka" {
			t.Errorf("Expected Shakshuka, got %q", got.Title)
		}
	})

	t.Run("DeleteByNonOwnerIsSilentNoOp", func(t *testing.T) {
		otherToken, _ := signUp(t, ts, "Eve", "eve@example.com")
		resp := doJSON(t, "DELETE", ts.URL+"/recipes/"+created.ID, otherToken, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}
		check := doJSON(t, "GET", ts.URL+"/recipes/"+created.ID, "", nil)
		if check.StatusCode != http.StatusOK {
			t.Error("Recipe was deleted by a non-owner")
		}
	})

	t.Run("DeleteByOwner", func(t *testing.T) {
		resp := doJSON(t, "DELETE", ts.URL+"/recipes/"+created.ID, token, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", resp.StatusCode)
		}
		check := doJSON(t, "GET", ts.URL+"/recipes/"+created.ID, "", nil)
		if check.StatusCode != http.StatusNotFound {
			t.Errorf("Expected 404 after delete, got %d", check.StatusCode)
		}
	})
}

func TestCreateRecipeValidation(t *testing.T) {
	ts := newTestServer(t)
	token, _ := signUp(t, ts, "Ana", "ana@example.com")

	bad := recipe.Input{
		Title:        "",
		Difficulty:   "Easy",
		Ingredients:  []string{"x"},
		Instructions: []string{"y"},
		Servings:     1,
	}
	resp := doJSON(t, "POST", ts.URL+"/recipes", token, bad)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for a blank title, got %d", resp.StatusCode)
	}
}

func TestDeleteSeedRecipeForbidden(t *testing.T) {
	ts := newTestServer(t)
	token, _ := signUp(t, ts, "Ana", "ana@example.com")

	resp := doJSON(t, "DELETE", ts.URL+"/recipes/3", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403 deleting a seed recipe, got %d", resp.StatusCode)
	}
}

func TestFavoritesFlow(t *testing.T) {
	ts := newTestServer(t)
	token, _ := signUp(t, ts, "Ana", "ana@example.com")

	resp := doJSON(t, "POST", ts.URL+"/favorites/2/toggle", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	state := decode[map[string]bool](t, resp)
	if !state["isFavorited"] {
		t.Error("Expected isFavorited=true after first toggle")
	}

	t.Run("ListFavoriteIDs", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/favorites", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		ids := decode[map[string][]string](t, resp)
		if len(ids["ids"]) != 1 || ids["ids"][0] != "2" {
			t.Errorf("Expected ids [2], got %v", ids["ids"])
		}
	})

	t.Run("FavoritesOnlyListing", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/recipes?favorites=true", token, nil)
		recipes := decode[[]recipe.Recipe](t, resp)
		if len(recipes) != 1 || recipes[0].ID != "2" {
			t.Errorf("Expected only recipe 2, got %+v", recipes)
		}
	})

	t.Run("FavoritesFlagIgnoredSignedOut", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/recipes?favorites=true", "", nil)
		recipes := decode[[]recipe.Recipe](t, resp)
		if len(recipes) != 6 {
			t.Errorf("Expected all 6 seeds signed out, got %d", len(recipes))
		}
	})

	t.Run("ToggleBack", func(t *testing.T) {
		resp := doJSON(t, "POST", ts.URL+"/favorites/2/toggle", token, nil)
		state := decode[map[string]bool](t, resp)
		if state["isFavorited"] {
			t.Error("Expected isFavorited=false after second toggle")
		}
	})
}

func TestAuthEndpoints(t *testing.T) {
	ts := newTestServer(t)
	token, user := signUp(t, ts, "Ana", "ana@example.com")

	t.Run("Me", func(t *testing.T) {
		resp := doJSON(t, "GET", ts.URL+"/auth/me", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
		got := decode[auth.User](t, resp)
		if got.ID != user.ID {
			t.Errorf("Expected user %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("DuplicateSignUp", func(t *testing.T) {
		resp := doJSON(t, "POST", ts.URL+"/auth/signup", "", map[string]string{
			"name": "Dup", "email": "ana@example.com", "password": "secret1",
		})
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("Expected 409, got %d", resp.StatusCode)
		}
	})

	t.Run("SignInWrongPassword", func(t *testing.T) {
		resp := doJSON(t, "POST", ts.URL+"/auth/signin", "", map[string]string{
			"email": "ana@example.com", "password": "nope99",
		})
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", resp.StatusCode)
		}
	})

	t.Run("SignOut", func(t *testing.T) {
		resp := doJSON(t, "POST", ts.URL+"/auth/signout", token, nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("Expected 204, got %d", resp.StatusCode)
		}
	})
}
