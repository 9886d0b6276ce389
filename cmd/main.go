package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mufid-dev-alt/office-attendance-track-backend/config"
	"github.com/mufid-dev-alt/office-attendance-track-backend/database"
	"github.com/mufid-dev-alt/office-attendance-track-backend/handlers"
	"github.com/mufid-dev-alt/office-attendance-track-backend/middlewares"
	"github.com/mufid-dev-alt/office-attendance-track-backend/routes"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	// Opens the store and seeds the demo data. A missing database does
	// not stop the process: the service degrades to the memory store.
	st := database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())
	e.Use(middlewares.CountRequests())
	e.Validator = handlers.NewValidator()

	routes.Register(e, st, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
