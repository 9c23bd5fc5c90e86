package seed

import (
	"sanitrack/config"
	. "sanitrack/internal/models"
	"sanitrack/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// Seed loads a small development dataset: one admin, two cleaners, and the
// toilets of a single floor. Safe to rerun; existing rows are skipped.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	if err := seedUsers(db, log); err != nil {
		return err
	}

	if err := seedToilets(db, log); err != nil {
		return err
	}

	return nil
}

func seedUsers(db *gorm.DB, log logger.Logger) error {
	users := []User{
		{
			Username: "admin",
			Password: utils.HashPassword("admin123!"),
			Name:     "Facility Admin",
			Role:     RoleAdmin,
			IsActive: true,
		},
		{
			Username: "ayse",
			Password: utils.HashPassword("cleaner123!"),
			Name:     "Ayse Demir",
			Role:     RoleCleaner,
			IsActive: true,
		},
		{
			Username: "mehmet",
			Password: utils.HashPassword("cleaner123!"),
			Name:     "Mehmet Kaya",
			Role:     RoleCleaner,
			IsActive: true,
		},
	}

	for _, user := range users {
		var existing User
		if err := db.First(&existing, "username = ?", user.Username).Error; err == nil {
			log.Info("User already exists", "username", user.Username)
			continue
		}
		log.Info("Seeding user", "username", user.Username, "role", user.Role)
		if err := db.Create(&user).Error; err != nil {
			return log.Err("failed to create user", err, "username", user.Username)
		}
	}

	return nil
}

func seedToilets(db *gorm.DB, log logger.Logger) error {
	toilets := []Toilet{
		{Name: "Men's Restroom - Ground Floor", Location: "Ground floor, east wing", IsActive: true},
		{Name: "Women's Restroom - Ground Floor", Location: "Ground floor, east wing", IsActive: true},
		{Name: "Accessible Restroom - Ground Floor", Location: "Ground floor, by the elevators", IsActive: true},
		{Name: "Men's Restroom - First Floor", Location: "First floor, west wing", IsActive: true},
		{Name: "Women's Restroom - First Floor", Location: "First floor, west wing", IsActive: true},
	}

	for _, toilet := range toilets {
		var existing Toilet
		if err := db.First(&existing, "name = ?", toilet.Name).Error; err == nil {
			log.Info("Toilet already exists", "name", toilet.Name)
			continue
		}
		log.Info("Seeding toilet", "name", toilet.Name)
		if err := db.Create(&toilet).Error; err != nil {
			return log.Err("failed to create toilet", err, "name", toilet.Name)
		}
	}

	return nil
}
