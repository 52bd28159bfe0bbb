package database

import (
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeclock/models"
)

var DB *gorm.DB

func Init(dsn string, log *zap.Logger) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(
		&models.User{},
		&models.Collaborator{},
		&models.TimeRecord{},
		&models.AdjustmentRequest{},
		&models.CalendarEvent{},
		&models.Invite{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultAdmin(log); err != nil {
		return err
	}

	return nil
}

func seedDefaultAdmin(log *zap.Logger) error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:           "admin",
		PasswordHash:       string(hashedPassword),
		Role:               models.RoleAdmin,
		MustChangePassword: true,
		IsActive:           true,
	}

	if result := DB.Create(&admin); result.Error != nil {
		return result.Error
	}

	log.Info("default admin user created", zap.String("username", "admin"))
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
