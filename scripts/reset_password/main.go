package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID             uint
	Username       string
	HashedPassword []byte
}

// Resets the operator password directly against the database file.
func main() {
	username := flag.String("username", "", "username to reset")
	password := flag.String("password", "", "new plaintext password (min 6 chars)")
	flag.Parse()
	if *username == "" || *password == "" {
		logrus.Fatal("--username and --password are required")
	}
	if len(*password) < 6 {
		logrus.Fatal("password too short (min 6)")
	}
	_ = godotenv.Load()
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "data/nativus.db"
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("open db")
	}
	var user User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		logrus.WithError(err).Fatal("user not found")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("bcrypt")
	}
	if err := db.Model(&user).Update("hashed_password", hash).Error; err != nil {
		logrus.WithError(err).Fatal("update failed")
	}
	fmt.Printf("Password reset for user %s\n", user.Username)
}
