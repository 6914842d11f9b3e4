package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentStatus string

const (
	DocumentPending          DocumentStatus = "pending"
	DocumentVerified         DocumentStatus = "verified"
	DocumentMismatch         DocumentStatus = "mismatch"
	DocumentExtractionFailed DocumentStatus = "extraction_failed"
)

type Document struct {
	gorm.Model
	UserID            uint           `gorm:"index;not null"`
	Name              string         `gorm:"not null"` // display label, e.g. "Aadhaar Card", "Income Certificate"
	FilePath          string         `gorm:"default:''"`
	Status            DocumentStatus `gorm:"type:varchar(32);default:'pending'"`
	ValidationMessage *string
	ExtractedData     datatypes.JSON // snapshot of extracted fields, kept on every transition
	ManuallyVerified  bool           `gorm:"default:false"`
}
