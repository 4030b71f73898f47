package db

import (
	"log"
	"os"

	"freeboard/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=freeboard port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Duplicate-key violations surface as gorm.ErrDuplicatedKey so the
		// feeling store can tell an already-voted insert from an I/O failure.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.User{},
		&models.BoardCategory{},
		&models.Sequence{},
		&models.Article{},
		&models.Comment{},
		&models.Feeling{},
		&models.HistoryEvent{},
		&models.Gallery{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedCategories()
}

func seedCategories() {
	var count int64
	DB.Model(&models.BoardCategory{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.BoardCategory{
		{Board: models.BoardFree, Code: "general", Name: "General"},
		{Board: models.BoardFree, Code: "football", Name: "Football"},
		{Board: models.BoardFree, Code: "develop", Name: "Development"},
	}

	for _, category := range categories {
		if err := DB.Create(&category).Error; err != nil {
			log.Printf("Failed to create category %s: %v", category.Code, err)
		}
	}
	log.Println("Initial categories created successfully")
}
