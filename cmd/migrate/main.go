package main

import (
	"context"
	"log"
	"os"

	"jobboard-be/internal/model"
	"jobboard-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Fail fast on an unreachable server
	version, err := database.Ping(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Error: database unreachable: %v", err)
	}
	log.Printf("Connected to PostgreSQL %s", version)

	db, err := database.NewGormDBFromDSN(dsn, true)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Schema, then the CHECK constraints AutoMigrate does not create
	log.Println("Step 1: Running AutoMigrate...")
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Step 2: Creating constraints...")
	postMigrationSQL := []string{
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'subscription_orders_payment_status_check') THEN
		     ALTER TABLE subscription_orders ADD CONSTRAINT subscription_orders_payment_status_check
		       CHECK (payment_status IN ('pending', 'paid', 'canceled', 'failed'));
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'subscription_orders_durations_check') THEN
		     ALTER TABLE subscription_orders ADD CONSTRAINT subscription_orders_durations_check CHECK (durations >= 1);
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'advertisement_subscriptions_status_check') THEN
		     ALTER TABLE advertisement_subscriptions ADD CONSTRAINT advertisement_subscriptions_status_check
		       CHECK (subscription_status IN ('default', 'special'));
		   END IF;
		 END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed.")
}
