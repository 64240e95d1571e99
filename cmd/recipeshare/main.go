package main

import (
	"log"
	"net/http"

	"recipeshare/internal/auth"
	"recipeshare/internal/clipper"
	"recipeshare/internal/config"
	"recipeshare/internal/database"
	"recipeshare/internal/favorites"
	"recipeshare/internal/recipe"
	"recipeshare/internal/server"
)

func main() {
	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	recipeStore := recipe.NewStore(recipe.NewRepository(db.SQL))
	favoriteService := favorites.NewService(favorites.NewRepository(db.SQL))
	authService := auth.NewService(auth.NewRepository(db.SQL), []byte(cfg.JWTSecret))
	recipeClipper := clipper.NewClipper()

	srv := server.New(recipeStore, favoriteService, authService, recipeClipper)

	log.Printf("Server starting on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler(cfg.CORSOrigins)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
