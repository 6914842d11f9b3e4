package documentController

import (
	"io"
	"log"
	"seva/config"
	"seva/database"
	"seva/engine"
	"seva/extractor"
	"seva/middleware"
	"seva/models"
	"seva/utils"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func buildVerifier() engine.Verifier {
	return engine.Verifier{
		Extractor: extractor.Default,
		Timeout:   time.Duration(config.AppConfig.ExtractorTimeoutSec) * time.Second,
		Matcher: engine.MatcherConfig{
			NameEditDistance:   config.AppConfig.NameEditDistance,
			IncomeTolerancePct: config.AppConfig.IncomeTolerancePct,
		},
	}
}

// UploadDocument accepts a multipart upload, runs the verifier and
// persists the resulting document. Only structural problems (missing
// file, missing name, missing profile) reject the request; extraction
// and matching outcomes are states on the stored document.
func UploadDocument(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document name is required!", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	db := database.Database.Db

	var profile models.Profile
	if err := db.Where("user_id = ?", userId).First(&profile).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Complete your profile before uploading documents.", nil)
	}

	// Read the raw content for extraction before saving to disk.
	src, err := fileHeader.Open()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}
	content, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded file!", nil)
	}

	fileText := ""
	if utf8.Valid(content) {
		fileText = string(content)
	}

	filePath, err := utils.SaveUploadedFile(fileHeader, "public/uploads")
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	doc := models.Document{
		UserID:   userId,
		Name:     name,
		FilePath: filePath,
		Status:   models.DocumentPending,
	}

	verifier := buildVerifier()
	verifier.Verify(c.UserContext(), &doc, fileText, profile)

	if err := db.Create(&doc).Error; err != nil {
		log.Printf("Error saving document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
	}

	// Tell the user why their evidence did not pass, when it didn't.
	if doc.Status != models.DocumentVerified && profile.Email != nil {
		reason := ""
		if doc.ValidationMessage != nil {
			reason = *doc.ValidationMessage
		}
		go func(email, docName string, status models.DocumentStatus, reason string) {
			if err := utils.SendDocumentStatusEmail(email, docName, status, reason); err != nil {
				log.Printf("Error sending document status email: %v", err)
			}
		}(*profile.Email, doc.Name, doc.Status, reason)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document uploaded.", doc)
}

// DocumentResponse is a stored document plus the URL it is served from.
type DocumentResponse struct {
	models.Document
	FileURL string `json:"fileUrl"`
}

func ListDocuments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	var documents []models.Document
	if err := database.Database.Db.Where("user_id = ?", userId).Order("id").Find(&documents).Error; err != nil {
		log.Printf("Error loading documents: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load documents!", nil)
	}

	responses := make([]DocumentResponse, 0, len(documents))
	for _, doc := range documents {
		responses = append(responses, DocumentResponse{
			Document: doc,
			FileURL:  utils.GetFileURL(doc.FilePath),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents fetched.", responses)
}

// ManualVerify applies user-declared field values as authoritative and
// moves the document straight to verified, recording the attestation.
func ManualVerify(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	docId, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	reqData, ok := c.Locals("validatedManualVerify").(*ManualVerifyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Where("id = ? AND user_id = ?", docId, userId).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
		}
		log.Printf("Error loading document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load document!", nil)
	}

	if reqData.Name != nil && strings.TrimSpace(*reqData.Name) != "" {
		doc.Name = strings.TrimSpace(*reqData.Name)
	}

	engine.ManualOverride(&doc, engine.FieldRecord{
		FullName: reqData.FullName,
		DOB:      reqData.DOB,
		IDNumber: reqData.IDNumber,
		Income:   reqData.Income,
	})

	if err := db.Save(&doc).Error; err != nil {
		log.Printf("Error saving document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document verified manually.", doc)
}

// ManualVerifyRequest carries the user-attested field corrections.
type ManualVerifyRequest struct {
	Name     *string  `json:"name"`
	FullName *string  `json:"fullName"`
	DOB      *string  `json:"dob"`
	IDNumber *string  `json:"idNumber"`
	Income   *float64 `json:"income"`
}

func DeleteDocument(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid user ID!", nil)
	}

	docId, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Where("id = ? AND user_id = ?", docId, userId).First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
		}
		log.Printf("Error loading document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load document!", nil)
	}

	if err := db.Delete(&doc).Error; err != nil {
		log.Printf("Error deleting document: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document deleted.", nil)
}
