// Package db opens the backing database and brings the schema up to
// date. Postgres in production (DSN from config, with connection
// retries); sqlite for local development and tests.
package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/solviatours/backoffice/internal/auth"
	"github.com/solviatours/backoffice/internal/gateway/gormstore"
	"github.com/solviatours/backoffice/internal/logger"
)

// Connect opens the database named by dsn, retrying postgres connections
// while the server comes up, and runs schema migration.
func Connect(dsn string, log logger.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if isSQLite(dsn) {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}
	} else {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			log.Warn("database not ready, retrying", "attempt", i+1, "error", err)
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	if err := gormstore.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func isSQLite(dsn string) bool {
	l := strings.ToLower(dsn)
	return strings.HasPrefix(l, "file:") || strings.HasSuffix(l, ".db") || strings.Contains(l, ":memory:")
}

// SeedAdmin creates the bootstrap admin account when no profile exists
// yet. Idempotent: a populated profiles table is left alone.
func SeedAdmin(db *gorm.DB, email, password string, log logger.Logger) error {
	var count int64
	if err := db.Model(&gormstore.Profile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count profiles: %w", err)
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := gormstore.AuthUser{Email: strings.ToLower(email), PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed auth user: %w", err)
	}
	profile := gormstore.Profile{
		ID:        user.ID,
		FirstName: "Admin",
		LastName:  "Principal",
		Email:     strings.ToLower(email),
		Role:      "admin",
		Active:    true,
	}
	if err := db.Create(&profile).Error; err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}
	log.Info("seeded bootstrap admin", "email", email)
	return nil
}
