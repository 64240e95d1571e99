// Package server is the HTTP presentation glue over the catalog, favorites,
// and auth layers. Handlers translate between JSON requests and the
// adapters; they hold no business rules beyond submission-form validation.
package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"recipeshare/internal/auth"
	"recipeshare/internal/clipper"
	"recipeshare/internal/favorites"
	"recipeshare/internal/recipe"
)

// Server bundles the handlers' dependencies.
type Server struct {
	store     *recipe.Store
	favorites *favorites.Service
	auth      *auth.Service
	clipper   *clipper.Clipper
}

// New creates a Server.
func New(store *recipe.Store, favs *favorites.Service, authSvc *auth.Service, clip *clipper.Clipper) *Server {
	return &Server{
		store:     store,
		favorites: favs,
		auth:      authSvc,
		clipper:   clip,
	}
}

// Handler builds the route table and wraps it with CORS for the browser
// frontend.
func (s *Server) Handler(corsOrigins []string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/recipes", s.handleListRecipes).Methods("GET")
	r.HandleFunc("/recipes", s.requireUser(s.handleCreateRecipe)).Methods("POST")
	r.HandleFunc("/recipes/{id}", s.handleGetRecipe).Methods("GET")
	r.HandleFunc("/recipes/{id}", s.requireUser(s.handleDeleteRecipe)).Methods("DELETE")

	r.HandleFunc("/favorites", s.requireUser(s.handleListFavorites)).Methods("GET")
	r.HandleFunc("/favorites/{id}/toggle", s.requireUser(s.handleToggleFavorite)).Methods("POST")

	r.HandleFunc("/auth/signup", s.handleSignUp).Methods("POST")
	r.HandleFunc("/auth/signin", s.handleSignIn).Methods("POST")
	r.HandleFunc("/auth/signout", s.handleSignOut).Methods("POST")
	r.HandleFunc("/auth/me", s.requireUser(s.handleMe)).Methods("GET")

	r.HandleFunc("/clip", s.requireUser(s.handleClip)).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
