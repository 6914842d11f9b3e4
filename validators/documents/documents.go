package documentValidator

import (
	documentController "seva/controllers/documents"
	"seva/engine"
	"seva/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func ManualVerify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(documentController.ManualVerifyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// At least one corrected field must be supplied
		if reqData.Name == nil && reqData.FullName == nil && reqData.DOB == nil &&
			reqData.IDNumber == nil && reqData.Income == nil {
			errors["fields"] = "Provide at least one field to verify manually!"
		}

		if reqData.FullName != nil && len(strings.TrimSpace(*reqData.FullName)) < 3 {
			errors["fullName"] = "Full name must be at least 3 characters long!"
		}

		if reqData.DOB != nil && *reqData.DOB != "" {
			if _, ok := engine.ParseDate(*reqData.DOB); !ok {
				errors["dob"] = "Date of birth must be a valid date!"
			}
		}

		if reqData.Income != nil && *reqData.Income < 0 {
			errors["income"] = "Income can't be negative!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated correction to the next middleware
		c.Locals("validatedManualVerify", reqData)
		return c.Next()
	}
}
