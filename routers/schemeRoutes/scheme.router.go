package schemeRoutes

import (
	schemeController "seva/controllers/schemes"
	"seva/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSchemeRoutes(app *fiber.App) {
	schemeGroup := app.Group("/schemes")

	schemeGroup.Get("/", middleware.JWTMiddleware, schemeController.ListSchemes)
	schemeGroup.Post("/discover", middleware.JWTMiddleware, schemeController.DiscoverSchemes)
	schemeGroup.Post("/:id/apply", middleware.JWTMiddleware, schemeController.ApplyScheme)
}
