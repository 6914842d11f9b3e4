package main

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"seva/config"
	"seva/database"
	"seva/models"
	"strings"

	"gorm.io/datatypes"
)

// Imports a scheme catalog from schemes.csv. Expected columns:
// name, description, target_group, benefits, portal_url, rules,
// required_documents — the last two hold JSON.
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("schemes.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	db := database.Database.Db
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		name := field(row, "name")
		if name == "" {
			log.Printf("Row %d: missing scheme name, skipping", i+2)
			skipped++
			continue
		}

		rules := field(row, "rules")
		if rules != "" && !json.Valid([]byte(rules)) {
			log.Printf("Row %d (%s): rules column is not valid JSON, skipping", i+2, name)
			skipped++
			continue
		}
		requiredDocs := field(row, "required_documents")
		if requiredDocs != "" && !json.Valid([]byte(requiredDocs)) {
			log.Printf("Row %d (%s): required_documents column is not valid JSON, skipping", i+2, name)
			skipped++
			continue
		}

		scheme := models.Scheme{
			Name:        name,
			Description: field(row, "description"),
			TargetGroup: field(row, "target_group"),
			Benefits:    field(row, "benefits"),
			PortalURL:   field(row, "portal_url"),
		}
		if rules != "" {
			scheme.Rules = datatypes.JSON(rules)
		}
		if requiredDocs != "" {
			scheme.RequiredDocuments = datatypes.JSON(requiredDocs)
		}

		var existing models.Scheme
		if err := db.Where("name = ?", name).First(&existing).Error; err == nil {
			scheme.ID = existing.ID
			if err := db.Save(&scheme).Error; err != nil {
				log.Printf("Row %d (%s): update failed: %v", i+2, name, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		if err := db.Create(&scheme).Error; err != nil {
			log.Printf("Row %d (%s): insert failed: %v", i+2, name, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete. Inserted: %d, Updated: %d, Skipped: %d", inserted, updated, skipped)
}
