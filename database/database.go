package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/harshalgaikwad03/CDAC-Project-Id-26/config"
	"github.com/harshalgaikwad03/CDAC-Project-Id-26/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// surfaces unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate creates/updates all tables. Shared with tests, which run it
// against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Agency{},
		&models.School{},
		&models.Driver{},
		&models.Bus{},
		&models.BusHelper{},
		&models.Student{},
		&models.StudentStatus{},
		&models.Feedback{},
		&models.Payment{},
	)
}
