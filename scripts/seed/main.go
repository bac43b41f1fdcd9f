package main

import (
	"fmt"
	"log"
	"os"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/config"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/database"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/services"
)

// Seeds a demo agency account for local development.
func main() {
	cfg := config.Load()
	database.Connect(cfg)

	email := "agency@demo.local"
	password := "agency123"

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Println("demo agency already exists:", email)
		os.Exit(0)
	}

	agency, err := services.SignupAgency(database.DB, services.SignupInput{
		Name:     "Demo Transport Agency",
		Email:    email,
		Phone:    "9999999999",
		Password: password,
		Address:  "1 Depot Road",
	})
	if err != nil {
		log.Fatalf("failed to seed agency: %v", err)
	}

	fmt.Println("demo agency created")
	fmt.Println("  id:      ", agency.ID)
	fmt.Println("  email:   ", email)
	fmt.Println("  password:", password)
}
