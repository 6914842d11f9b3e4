package profileRoutes

import (
	profileController "seva/controllers/profile"
	"seva/middleware"
	profileValidator "seva/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")

	profileGroup.Get("/", middleware.JWTMiddleware, profileController.GetProfile)
	profileGroup.Put("/", profileValidator.UpdateProfile(), middleware.JWTMiddleware, profileController.UpdateProfile)
}
