package db

import (
	"fmt"
	"log"

	"github.com/ivan51987/dentista-backend/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Treatment{},
		&models.Appointment{},
		&models.DentalRecord{},
		&models.Tooth{},
		&models.Document{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
