package main

import (
	"os"
	"path/filepath"
	"strings"

	"nativus/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB(path string) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logrus.WithError(err).Fatalf("failed to create database dir %s", dir)
			}
		}
	}
	var err error
	db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to open sqlite database")
	}

	// Migrate models individually so a failure on one doesn't block others.
	for name, model := range map[string]any{
		"users":          &models.User{},
		"customers":      &models.Customer{},
		"orders":         &models.Order{},
		"expenses":       &models.Expense{},
		"tasks":          &models.Task{},
		"refresh_tokens": &models.RefreshToken{},
	} {
		if err := db.AutoMigrate(model); err != nil {
			logrus.WithError(err).Warnf("migration warning (%s)", name)
		}
	}
	seedOperator()
}

// seedOperator creates the operator account from OPERATOR_USER and
// OPERATOR_PASSWORD when both are set. Idempotent: an existing account is
// left alone.
func seedOperator() {
	username := os.Getenv("OPERATOR_USER")
	password := os.Getenv("OPERATOR_PASSWORD")
	if username == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("username = ?", strings.TrimSpace(strings.ToLower(username))).Count(&count)
	if count > 0 {
		return
	}
	if err := RegisterOperator(username, password); err != nil {
		logrus.WithError(err).Warn("operator seed failed")
		return
	}
	logrus.WithField("username", username).Info("seeded operator account")
}
