package main

import (
	"log"
	"os"

	"taller_manager/database"
	"taller_manager/helper"
	"taller_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // fotos de reparación
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, Stripe-Signature",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartRecordatorioScheduler()
	defer helper.StopRecordatorioScheduler()
	helper.StartLimpiezaScheduler()
	defer helper.StopLimpiezaScheduler()

	router.SetupRoutes(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
