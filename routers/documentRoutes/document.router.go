package documentRoutes

import (
	documentController "seva/controllers/documents"
	"seva/middleware"
	documentValidator "seva/validators/documents"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	documentGroup := app.Group("/documents")

	documentGroup.Post("/upload", middleware.JWTMiddleware, documentController.UploadDocument)
	documentGroup.Get("/", middleware.JWTMiddleware, documentController.ListDocuments)
	documentGroup.Put("/:id", documentValidator.ManualVerify(), middleware.JWTMiddleware, documentController.ManualVerify)
	documentGroup.Delete("/:id", middleware.JWTMiddleware, documentController.DeleteDocument)
}
