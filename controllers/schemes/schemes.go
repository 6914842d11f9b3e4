package schemeController

import (
	"log"
	"path/filepath"
	"seva/config"
	"seva/database"
	"seva/discovery"
	"seva/engine"
	"seva/kit"
	"seva/middleware"
	"seva/models"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SchemeResponse is the per-scheme verdict surfaced to the caller. One
// entry is returned per catalog scheme, in catalog order, even when
// subsystems are degraded.
type SchemeResponse struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Benefits         string   `json:"benefits"`
	PortalURL        string   `json:"portalUrl"`
	IsEligible       bool     `json:"isEligible"`
	Reason           string   `json:"reason,omitempty"`
	MissingDocuments []string `json:"missingDocuments"`
}

func loadEvaluationInputs(db *gorm.DB, userId uint) (*models.Profile, []models.Document, error) {
	var profile *models.Profile
	var stored models.Profile
	err := db.Where("user_id = ?", userId).First(&stored).Error
	if err == nil {
		profile = &stored
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, err
	}

	var documents []models.Document
	if err := db.Where("user_id = ?", userId).Find(&documents).Error; err != nil {
		return nil, nil, err
	}
	return profile, documents, nil
}

func evaluateAll(db *gorm.DB, userId uint, userType string) ([]SchemeResponse, error) {
	profile, documents, err := loadEvaluationInputs(db, userId)
	if err != nil {
		return nil, err
	}

	var schemes []models.Scheme
	if err := db.Order("id").Find(&schemes).Error; err != nil {
		return nil, err
	}

	results := engine.Evaluate(profile, userType, documents, schemes)

	responses := make([]SchemeResponse, 0, len(schemes))
	for i, scheme := range schemes {
		responses = append(responses, SchemeResponse{
			ID:               scheme.ID,
			Name:             scheme.Name,
			Description:      scheme.Description,
			Benefits:         scheme.Benefits,
			PortalURL:        scheme.PortalURL,
			IsEligible:       results[i].Eligible,
			Reason:           results[i].Reason,
			MissingDocuments: results[i].MissingDocuments,
		})
	}
	return responses, nil
}

// ListSchemes returns every catalog scheme with its current eligibility
// verdict, recomputed on each request.
func ListSchemes(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	responses, err := evaluateAll(database.Database.Db, userId, userType)
	if err != nil {
		log.Printf("Error evaluating schemes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to evaluate schemes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schemes evaluated.", responses)
}

// DiscoverSchemes pulls candidates from the suggestion source into the
// catalog, then evaluates the full catalog through the same engine.
func DiscoverSchemes(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	db := database.Database.Db

	profile, _, err := loadEvaluationInputs(db, userId)
	if err != nil {
		log.Printf("Error loading profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	if err := discovery.Run(c.UserContext(), db, userType, profile); err != nil {
		// Degraded suggestion source still yields the existing catalog.
		log.Printf("Scheme discovery failed: %v", err)
	}

	responses, err := evaluateAll(db, userId, userType)
	if err != nil {
		log.Printf("Error evaluating schemes: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to evaluate schemes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Schemes discovered.", responses)
}

// ApplyScheme builds the application kit for an eligible scheme.
// Eligibility is re-checked at request time; a cached verdict is never
// trusted since document state may have changed.
func ApplyScheme(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}
	userType, _ := c.Locals("userType").(string)

	schemeId, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid scheme ID!", nil)
	}

	db := database.Database.Db

	var scheme models.Scheme
	if err := db.First(&scheme, schemeId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Scheme not found!", nil)
		}
		log.Printf("Error loading scheme: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load scheme!", nil)
	}

	profile, documents, err := loadEvaluationInputs(db, userId)
	if err != nil {
		log.Printf("Error loading evaluation inputs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load profile!", nil)
	}

	results := engine.Evaluate(profile, userType, documents, []models.Scheme{scheme})
	if !results[0].Eligible {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not eligible for this scheme.", fiber.Map{
			"reason":           results[0].Reason,
			"missingDocuments": results[0].MissingDocuments,
		})
	}

	kitPath, err := kit.Build(config.AppConfig.KitOutputDir, *profile, userType, scheme, documents)
	if err != nil {
		log.Printf("Error building application kit: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build application kit!", nil)
	}

	return c.Download(kitPath, filepath.Base(kitPath))
}
