package main

import (
	"log"
	"os"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/model"
	"emoticore-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.Options{})
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Subscription Plans...")

	plans := []model.SubscriptionPlan{
		{Name: "Free", Slug: "free", Description: "Talk to EmotiCore with a daily message allowance", Price: 0, Interval: constant.PlanIntervalMonth, IsActive: true, SortOrder: 0},
		{Name: "Premium Monthly", Slug: "premium-monthly", Description: "Unlimited conversations, billed monthly", Price: 49000, Interval: constant.PlanIntervalMonth, IsActive: true, SortOrder: 1},
		{Name: "Premium Yearly", Slug: "premium-yearly", Description: "Unlimited conversations, billed yearly", Price: 490000, Interval: constant.PlanIntervalYear, IsActive: true, SortOrder: 2},
	}

	for _, p := range plans {
		// Check if plan with this slug already exists
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		p.Id = uuid.New()
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	log.Println("Plan seeding completed!")
}
