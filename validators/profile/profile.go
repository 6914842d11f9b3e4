package profileValidator

import (
	"regexp"
	profileController "seva/controllers/profile"
	"seva/engine"
	"seva/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isValidIFSC(ifsc string) bool {
	re := regexp.MustCompile(`^[A-Za-z]{4}0[A-Za-z0-9]{6}$`)
	return re.MatchString(ifsc)
}

func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Parse request body
		reqData := new(profileController.ProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Full Name
		if len(strings.TrimSpace(reqData.FullName)) < 3 {
			errors["fullName"] = "Full name must be at least 3 characters long!"
		}

		// Validate DOB (Optional but must be a parseable date if provided)
		if reqData.DOB != nil && *reqData.DOB != "" {
			if _, ok := engine.ParseDate(*reqData.DOB); !ok {
				errors["dob"] = "Date of birth must be a valid date!"
			}
		}

		// Validate Income (Optional but must be non-negative if provided)
		if reqData.Income != nil && *reqData.Income < 0 {
			errors["income"] = "Income can't be negative!"
		}

		// Validate Aadhaar Number (Optional but must be 12 digits if provided)
		if reqData.AadhaarNumber != nil && *reqData.AadhaarNumber != "" {
			cleaned := strings.NewReplacer(" ", "", "-", "").Replace(*reqData.AadhaarNumber)
			if len(cleaned) != 12 {
				errors["aadhaarNumber"] = "Invalid Aadhaar number! It must be 12 digits long!"
			}
		}

		// Validate IFSC Code (Optional but must match valid format)
		if reqData.IFSCCode != nil && *reqData.IFSCCode != "" && !isValidIFSC(*reqData.IFSCCode) {
			errors["ifscCode"] = "Invalid IFSC code! It must be 11 characters long and alphanumeric."
		}

		// Validate Year of Study (Optional)
		if reqData.YearOfStudy != nil && *reqData.YearOfStudy < 1 {
			errors["yearOfStudy"] = "Year of study must be greater than 0!"
		}

		// Validate Land Size (Optional)
		if reqData.LandSize != nil && *reqData.LandSize < 0 {
			errors["landSize"] = "Land size can't be negative!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated profile to the next middleware
		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
