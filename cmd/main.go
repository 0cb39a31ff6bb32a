package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/patiponrmutl/SISBackend/config"
	"github.com/patiponrmutl/SISBackend/database"
	"github.com/patiponrmutl/SISBackend/routes"
)

// @title           SIS API
// @version         1.0
// @description     Echo + PostgreSQL school information system
// @BasePath        /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system env")
	}

	cfg := config.Load()

	// เชื่อมต่อฐานข้อมูล + migrate + seed role
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
