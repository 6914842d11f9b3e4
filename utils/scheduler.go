package utils

import (
	"context"
	"log"
	"seva/database"
	"seva/discovery"
	"seva/models"
	"time"

	"github.com/robfig/cron/v3"
)

// refreshCatalog re-runs scheme discovery for profiles active in the
// last week so the catalog keeps up with newly announced schemes.
func refreshCatalog() {
	db := database.Database.Db

	var profiles []models.Profile
	cutoff := time.Now().AddDate(0, 0, -7)
	if err := db.Where("updated_at > ?", cutoff).Find(&profiles).Error; err != nil {
		log.Printf("Catalog refresh: failed to load profiles: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	for _, profile := range profiles {
		var user models.User
		if err := db.First(&user, profile.UserID).Error; err != nil {
			continue
		}
		p := profile
		if err := discovery.Run(ctx, db, user.UserType, &p); err != nil {
			log.Printf("Catalog refresh: discovery failed for user %d: %v", user.ID, err)
		}
	}
	log.Printf("Catalog refresh completed for %d active profiles.", len(profiles))
}

// InitializeCatalogScheduler runs the catalog refresh nightly at 02:00 IST.
func InitializeCatalogScheduler() *cron.Cron {
	ist, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("Failed to load IST timezone, using local: %v", err)
		ist = time.Local
	}

	c := cron.New(cron.WithLocation(ist))

	if _, err := c.AddFunc("0 2 * * *", refreshCatalog); err != nil {
		log.Printf("Failed to schedule catalog refresh: %v", err)
	}

	c.Start()
	log.Println("Catalog refresh scheduler started.")
	return c
}
