package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kunalaswar/HireFlow/internal/models"
)

// Migrate creates or updates the schema and seeds the tracking code
// counter.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Invite{},
		&models.PasswordReset{},
		&models.EmailVerificationToken{},
		&models.Job{},
		&models.Application{},
		&models.TrackingSequence{},
	); err != nil {
		return err
	}
	return seedTrackingSequence(db)
}

func seedTrackingSequence(db *gorm.DB) error {
	var seq models.TrackingSequence
	err := db.Where("name = ?", models.ApplicationSequence).First(&seq).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.TrackingSequence{Name: models.ApplicationSequence, Value: 0}).Error
}
