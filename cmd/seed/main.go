package main

import (
	"log"

	"jobboard-be/internal/config"
	"jobboard-be/internal/entity"
	"jobboard-be/internal/pkg/serverutils"
	"jobboard-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding subscription plans...")
	SeedPlans(db)

	log.Println("Seeding demo users and advertisements...")
	users := SeedCatalog(db)

	if cfg.Auth.JWTSecret == "" {
		log.Println("JWT_SECRET is empty, skipping demo tokens")
		return
	}
	for _, u := range users {
		token, err := serverutils.SignToken(cfg.Auth.JWTSecret, u.Id, entity.UserRole(u.Role))
		if err != nil {
			log.Printf("Error signing token for %s: %v", u.Email, err)
			continue
		}
		log.Printf("Token for %s (%s): %s", u.Email, u.Role, token)
	}

	log.Println("Seeding completed!")
}
