package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"recipeshare/internal/auth"
	"recipeshare/internal/catalog"
	"recipeshare/internal/recipe"
)

type userHandler func(w http.ResponseWriter, r *http.Request, user *auth.User)

// requireUser resolves the bearer token and rejects the request when it is
// missing or invalid.
func (s *Server) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := s.userFromRequest(r)
		if user == nil {
			writeError(w, http.StatusUnauthorized, "you must be logged in")
			return
		}
		next(w, r, user)
	}
}

// userFromRequest resolves the bearer token if present. Invalid or absent
// tokens just mean "no user": browse paths work signed out.
func (s *Server) userFromRequest(r *http.Request) *auth.User {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil
	}
	user, err := s.auth.ParseToken(r.Context(), token)
	if err != nil {
		return nil
	}
	return user
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	user := s.userFromRequest(r)

	all := s.store.ListAll(r.Context())

	q := catalog.Query{
		Search:        r.URL.Query().Get("search"),
		Cuisine:       r.URL.Query().Get("cuisine"),
		Difficulty:    r.URL.Query().Get("difficulty"),
		FavoritesOnly: r.URL.Query().Get("favorites") == "true",
		UserPresent:   user != nil,
	}
	if user != nil {
		q.FavoriteIDs = s.favorites.ListFavoriteIDs(r.Context(), user.ID)
	}

	writeJSON(w, http.StatusOK, catalog.Filter(all, q))
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, ok := s.store.GetByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request, user *auth.User) {
	var input recipe.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg, ok := validateInput(input); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	rec, err := s.store.Create(r.Context(), input, user.ID)
	if err != nil {
		writeAdapterError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// validateInput holds the submission-form business rules. The store adapter
// deliberately does not re-check these.
func validateInput(in recipe.Input) (string, bool) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return "title is required", false
	case len(in.Ingredients) == 0:
		return "at least one ingredient is required", false
	case len(in.Instructions) == 0:
		return "at least one instruction step is required", false
	case in.Difficulty != recipe.DifficultyEasy &&
		in.Difficulty != recipe.DifficultyMedium &&
		in.Difficulty != recipe.DifficultyHard:
		return "difficulty must be Easy, Medium, or Hard", false
	case in.PrepTime < 0 || in.CookTime < 0:
		return "times must not be negative", false
	case in.Servings < 1:
		return "servings must be at least 1", false
	}
	return "", true
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request, user *auth.User) {
	id := mux.Vars(r)["id"]
	if err := s.store.Remove(r.Context(), id, user.ID); err != nil {
		writeAdapterError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request, user *auth.User) {
	set := s.favorites.ListFavoriteIDs(r.Context(), user.ID)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	writeJSON(w, http.StatusOK, map[string]any{"ids": ids})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request, user *auth.User) {
	id := mux.Vars(r)["id"]
	favorited, err := s.favorites.Toggle(r.Context(), user.ID, id)
	if err != nil {
		writeAdapterError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isFavorited": favorited})
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *auth.User `json:"user"`
	Token string     `json:"token"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.SignUp(r.Context(), creds.Name, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	s.respondWithSession(w, http.StatusCreated, user)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.SignIn(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
		} else {
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	s.respondWithSession(w, http.StatusOK, user)
}

// handleSignOut exists for frontend symmetry. Tokens are stateless, so the
// client discarding its copy is the whole operation.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, user *auth.User) {
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleClip(w http.ResponseWriter, r *http.Request, user *auth.User) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	input, err := s.clipper.ClipURL(r.Context(), body.URL)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, input)
}

func (s *Server) respondWithSession(w http.ResponseWriter, status int, user *auth.User) {
	token, err := s.auth.IssueToken(user)
	if err != nil {
		log.Printf("Failed to issue token for user %s: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, status, sessionResponse{User: user, Token: token})
}

// writeAdapterError maps the adapter failure taxonomy onto status codes.
func writeAdapterError(w http.ResponseWriter, err error) {
	var storeErr *recipe.StoreError
	switch {
	case errors.Is(err, recipe.ErrForbidden):
		writeError(w, http.StatusForbidden, "cannot delete built-in recipes")
	case errors.Is(err, recipe.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, "you must be logged in")
	case errors.Is(err, recipe.ErrNotFound):
		writeError(w, http.StatusNotFound, "recipe not found")
	case errors.As(err, &storeErr):
		writeError(w, http.StatusInternalServerError, storeErr.Message)
	default:
		writeError(w, http.StatusInternalServerError, "unexpected error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
