package db

import (
	"os"

	"github.com/baco-dev/baco/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError turns unique-index violations into
	// gorm.ErrDuplicatedKey, which the store layer relies on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Notification{},
		&models.NotificationRecipient{},
		&models.ChatMessage{},
		&models.EventCoOrganizer{},
		&models.EventCoOrganizerInvite{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDatabase creates the reserved admin account and the default category
// tree. On a fresh database the admin lands at ID 1.
func SeedDatabase() error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@baco.app"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "change-me-please"
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:           "Baco Admin",
		Email:          adminEmail,
		PasswordHash:   string(passwordHash),
		DocumentStatus: models.DocumentStatusApproved,
		IsAdmin:        true,
	}
	if err := DB.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
		return err
	}

	defaults := map[string][]string{
		"Sports":  {"Football", "Running", "Climbing"},
		"Music":   {"Concerts", "Jam Sessions"},
		"Food":    {"Dinners", "Tastings"},
		"Culture": {"Museums", "Theater"},
		"Social":  {"Meetups", "Board Games"},
	}

	for name, subs := range defaults {
		category := models.Category{Name: name}
		if err := DB.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		for _, sub := range subs {
			subcategory := models.Subcategory{CategoryID: category.ID, Name: sub}
			if err := DB.Where("category_id = ? AND name = ?", category.ID, sub).
				FirstOrCreate(&subcategory).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
