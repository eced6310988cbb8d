package main

import (
	"fmt"
	"os"

	"nativus/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Creates the operator account directly against the configured database file.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <username> <password>")
		os.Exit(2)
	}
	username := os.Args[1]
	password := os.Args[2]

	_ = godotenv.Load()
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "data/nativus.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to open db")
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", username, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("bcrypt failed")
	}
	user := models.User{Username: username, HashedPassword: hpw}
	if err := db.Create(&user).Error; err != nil {
		logrus.WithError(err).Fatal("failed to create user")
	}
	fmt.Printf("created operator %s id=%d\n", username, user.ID)
}
