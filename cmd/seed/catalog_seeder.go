package main

import (
	"errors"
	"log"
	"time"

	"jobboard-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func SeedPlans(db *gorm.DB) {
	plans := []model.SubscriptionPlan{
		{Name: "Silver", PricePerDay: 50000, IsActive: true},
		{Name: "Gold", PricePerDay: 100000, IsActive: true},
		{Name: "Platinum", PricePerDay: 250000, IsActive: true},
	}

	for _, p := range plans {
		var existing model.SubscriptionPlan
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Name)
			continue
		}

		p.Id = uuid.New()
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Name, err)
		} else {
			log.Printf("Created plan: %s (%d rials/day)", p.Name, p.PricePerDay)
		}
	}
}

// SeedCatalog creates an employer with one job advertisement and an admin.
// It returns both users, existing or new.
func SeedCatalog(db *gorm.DB) []model.User {
	employer := ensureUser(db, model.User{Email: "employer@jobboard.local", Phone: "09120000001", FullName: "Demo Employer", Role: "user"})
	admin := ensureUser(db, model.User{Email: "admin@jobboard.local", FullName: "Demo Admin", Role: "admin"})

	const slug = "senior-go-engineer"
	var existing model.Advertisement
	err := db.Where("slug = ?", slug).First(&existing).Error
	if err == nil {
		log.Printf("Advertisement '%s' already exists (subscription %s)", slug, existing.SubscriptionId)
		return []model.User{employer, admin}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error looking up advertisement '%s': %v", slug, err)
		return []model.User{employer, admin}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		sub := model.AdvertisementSubscription{
			Id:                 uuid.New(),
			SubscriptionStatus: "default",
			StartDate:          time.Now(),
		}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		ad := model.Advertisement{
			Id:             uuid.New(),
			Slug:           slug,
			Title:          "Senior Go Engineer",
			OwnerId:        employer.Id,
			AdType:         "job",
			SubscriptionId: sub.Id,
		}
		if err := tx.Create(&ad).Error; err != nil {
			return err
		}
		log.Printf("Created advertisement: %s (subscription %s)", ad.Slug, sub.Id)
		return nil
	})
	if err != nil {
		log.Printf("Error creating advertisement '%s': %v", slug, err)
	}

	return []model.User{employer, admin}
}

func ensureUser(db *gorm.DB, u model.User) model.User {
	var existing model.User
	if err := db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		return existing
	}
	u.Id = uuid.New()
	if err := db.Create(&u).Error; err != nil {
		log.Printf("Error creating user '%s': %v", u.Email, err)
	} else {
		log.Printf("Created user: %s (%s)", u.Email, u.Role)
	}
	return u
}
