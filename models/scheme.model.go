package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Scheme is a catalog entry for a government assistance program. Rules
// holds the structured eligibility predicate and RequiredDocuments the
// list of evidence labels, both as JSON columns.
type Scheme struct {
	gorm.Model
	Name              string `gorm:"uniqueIndex;not null"`
	Description       string
	TargetGroup       string `gorm:"default:'other'"`
	Benefits          string
	PortalURL         string
	Rules             datatypes.JSON
	RequiredDocuments datatypes.JSON
}
