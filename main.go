package main

import (
	"log"
	"seva/config"
	"seva/database"
	"seva/discovery"
	"seva/extractor"
	authRoutes "seva/routers/authRoutes"
	documentRoutes "seva/routers/documentRoutes"
	profileRoutes "seva/routers/profileRoutes"
	schemeRoutes "seva/routers/schemeRoutes"
	"seva/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Select the extractor and suggestion implementations once at start.
	extractor.Init()
	discovery.Init()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files (uploads, generated kits) from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	profileRoutes.SetupProfileRoutes(app)
	documentRoutes.SetupDocumentRoutes(app)
	schemeRoutes.SetupSchemeRoutes(app)

	utils.InitializeCatalogScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
