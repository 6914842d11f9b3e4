package authValidator

import (
	"seva/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var validUserTypes = map[string]bool{
	"student":    true,
	"farmer":     true,
	"unemployed": true,
	"worker":     true,
	"other":      true,
}

func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
			UserType string `json:"userType"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Username
		if len(strings.TrimSpace(reqData.Username)) < 3 {
			errors["username"] = "Username must be at least 3 characters long!"
		}

		// Validate Password
		if len(reqData.Password) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		// Validate User Type
		if !validUserTypes[strings.ToLower(strings.TrimSpace(reqData.UserType))] {
			errors["userType"] = "User type must be one of student, farmer, unemployed, worker, other!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(struct {
			Username string `json:"username"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Username) == "" {
			errors["username"] = "Username is required!"
		}
		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
