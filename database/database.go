package database

import (
	"fmt"
	"log"

	"round-tracker/config"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/periods"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},

		// reference data
		&periods.DatePeriod{},
		&rounds.Round{},
		&rounds.ParcelType{},

		// daily records
		&activities.Activity{},
		&activities.ActivityImage{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
