package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/config"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/routes"
)

func main() {
	cfg := config.Load()

	// fail fast if the database is not up
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg.JWTSecret)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
