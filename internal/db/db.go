package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func NewDB(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db, log); err != nil {
		return nil, err
	}

	if err := SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB, log zerolog.Logger) error {
	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		ensureOverlapConstraint(db, log)
	}
	return nil
}

const overlapConstraint = "appointments_no_overlap"

// ensureOverlapConstraint makes overlapping active appointments of one
// barber impossible at the storage level. Without btree_gist the service
// still relies on the per-day advisory lock.
func ensureOverlapConstraint(db *gorm.DB, log zerolog.Logger) {
	exists, err := overlapConstraintExists(db)
	if err != nil {
		log.Warn().Err(err).Msg("could not look up overlap constraint")
		return
	}
	if exists {
		return
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Warn().Err(err).Msg("btree_gist unavailable, overlap constraint not installed")
		return
	}

	err = db.Exec(`
		ALTER TABLE appointments
		ADD CONSTRAINT ` + overlapConstraint + `
		EXCLUDE USING gist (
			barber_id WITH =,
			date WITH =,
			int4range(start_minute, end_minute) WITH &&
		) WHERE (status <> 'CANCELED')
	`).Error
	if err != nil {
		log.Warn().Err(err).Msg("could not install overlap constraint")
		return
	}

	log.Info().Str("constraint", overlapConstraint).Msg("overlap constraint installed")
}

func overlapConstraintExists(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Raw(`SELECT count(*) FROM pg_constraint WHERE conname = ?`, overlapConstraint).
		Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("look up %s: %w", overlapConstraint, err)
	}
	return count > 0, nil
}

// SeedAdmin creates the admin account once. Empty credentials skip it.
func SeedAdmin(db *gorm.DB, email, password string, log zerolog.Logger) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		Role:         string(identity.RoleAdmin),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("email", email).Msg("admin user seeded")
	return nil
}
