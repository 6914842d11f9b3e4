package profileController

import (
	"context"
	"log"
	"seva/database"
	"seva/discovery"
	"seva/middleware"
	"seva/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileRequest mirrors the profile record; every optional field is a
// pointer so absence stays distinguishable from a zero value.
type ProfileRequest struct {
	FullName          string   `json:"fullName"`
	DOB               *string  `json:"dob"`
	Gender            *string  `json:"gender"`
	Email             *string  `json:"email"`
	State             *string  `json:"state"`
	District          *string  `json:"district"`
	AadhaarNumber     *string  `json:"aadhaarNumber"`
	MobileNumber      *string  `json:"mobileNumber"`
	BankAccountNumber *string  `json:"bankAccountNumber"`
	IFSCCode          *string  `json:"ifscCode"`
	Income            *float64 `json:"income"`

	CollegeName      *string `json:"collegeName"`
	University       *string `json:"university"`
	CourseName       *string `json:"courseName"`
	CourseType       *string `json:"courseType"`
	YearOfStudy      *int    `json:"yearOfStudy"`
	EnrollmentNumber *string `json:"enrollmentNumber"`
	Category         *string `json:"category"`

	LandOwnership *string  `json:"landOwnership"`
	LandSize      *float64 `json:"landSize"`
	CropType      *string  `json:"cropType"`
}

func GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var profile models.Profile
	err := database.Database.Db.Where("user_id = ?", userId).First(&profile).Error
	if err == gorm.ErrRecordNotFound {
		// Pre-onboarding: no profile yet, not an error.
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile not created yet.", nil)
	}
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched.", profile)
}

// UpdateProfile overwrites the profile wholesale on each save; there are
// no partial-patch semantics.
func UpdateProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*ProfileRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var profile models.Profile
	err := db.Where("user_id = ?", userId).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Printf("Error loading profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	profile.UserID = userId
	profile.FullName = reqData.FullName
	profile.DOB = reqData.DOB
	profile.Gender = reqData.Gender
	profile.Email = reqData.Email
	profile.State = reqData.State
	profile.District = reqData.District
	profile.AadhaarNumber = reqData.AadhaarNumber
	profile.MobileNumber = reqData.MobileNumber
	profile.BankAccountNumber = reqData.BankAccountNumber
	profile.IFSCCode = reqData.IFSCCode
	profile.Income = reqData.Income
	profile.CollegeName = reqData.CollegeName
	profile.University = reqData.University
	profile.CourseName = reqData.CourseName
	profile.CourseType = reqData.CourseType
	profile.YearOfStudy = reqData.YearOfStudy
	profile.EnrollmentNumber = reqData.EnrollmentNumber
	profile.Category = reqData.Category
	profile.LandOwnership = reqData.LandOwnership
	profile.LandSize = reqData.LandSize
	profile.CropType = reqData.CropType

	if err := db.Save(&profile).Error; err != nil {
		log.Printf("Error saving profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save profile!", nil)
	}

	// Refresh the scheme catalog for this profile in the background.
	userType, _ := c.Locals("userType").(string)
	go func(profile models.Profile, userType string) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := discovery.Run(ctx, database.Database.Db, userType, &profile); err != nil {
			log.Printf("Background scheme discovery failed: %v", err)
		}
	}(profile, userType)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile saved.", profile)
}
