package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"seva/config"
	"seva/models"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	// Build the PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		config.AppConfig.DBName,
		os.Getenv("DB_PORT"),
	)

	// Open database connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	// Run database migrations
	runMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}

	seedSchemes(db)
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Document{},
		&models.Scheme{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedSchemes loads a starter scheme catalog on an empty database.
func seedSchemes(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.Scheme{}).Count(&count).Error; err != nil {
		log.Printf("Error counting schemes: %v", err)
		return
	}
	if count > 0 {
		return
	}

	mustJSON := func(v interface{}) datatypes.JSON {
		b, err := json.Marshal(v)
		if err != nil {
			log.Fatalf("Failed to marshal seed data: %v", err)
		}
		return datatypes.JSON(b)
	}

	schemes := []models.Scheme{
		{
			Name:        "Post Matric Scholarship",
			Description: "Financial assistance for SC/ST students.",
			TargetGroup: "student",
			Benefits:    "Tuition fee waiver + Maintenance allowance",
			PortalURL:   "https://scholarships.gov.in",
			Rules: mustJSON(map[string]interface{}{
				"user_types": []string{"student"},
				"max_income": 250000,
				"categories": []string{"SC", "ST"},
			}),
			RequiredDocuments: mustJSON([]string{"Aadhaar Card", "Income Certificate", "Caste Certificate"}),
		},
		{
			Name:        "PM Kisan Samman Nidhi",
			Description: "Income support for all landholding farmers.",
			TargetGroup: "farmer",
			Benefits:    "Rs 6000 per year",
			PortalURL:   "https://pmkisan.gov.in",
			Rules: mustJSON(map[string]interface{}{
				"user_types": []string{"farmer"},
				"state":      "Gujarat",
			}),
			RequiredDocuments: mustJSON([]string{"Aadhaar Card", "Land Records", "Bank Passbook"}),
		},
	}

	if err := db.Create(&schemes).Error; err != nil {
		log.Printf("Error seeding schemes: %v", err)
		return
	}
	log.Printf("Seeded %d schemes into empty catalog.", len(schemes))
}
