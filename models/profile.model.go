package models

import (
	"gorm.io/gorm"
)

// Profile is the citizen's self-declared record. Every field except the
// full name is optional; eligibility rules treat an absent field as a
// failed predicate, never as an error.
type Profile struct {
	gorm.Model
	UserID            uint   `gorm:"uniqueIndex;not null"`
	FullName          string `gorm:"not null"`
	DOB               *string
	Gender            *string
	Email             *string
	State             *string
	District          *string
	AadhaarNumber     *string
	MobileNumber      *string
	BankAccountNumber *string
	IFSCCode          *string
	Income            *float64 // annual family income

	// Student specific
	CollegeName      *string
	University       *string
	CourseName       *string
	CourseType       *string // UG/PG/etc
	YearOfStudy      *int
	EnrollmentNumber *string
	Category         *string // General/OBC/SC/ST

	// Farmer specific
	LandOwnership *string
	LandSize      *float64 // in acres
	CropType      *string
}
