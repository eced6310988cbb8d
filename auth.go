package main

import (
	"errors"
	"fmt"
	"strings"

	"nativus/models"

	"golang.org/x/crypto/bcrypt"
)

// errUserExists distinguishes a taken username from validation failures so
// the handler can map them to different status codes.
var errUserExists = errors.New("user already exists")

// RegisterOperator creates the operator account.
func RegisterOperator(username, password string) error {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return fmt.Errorf("username required")
	}
	if len(password) < 6 { // basic password policy
		return fmt.Errorf("password too short (min 6)")
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return errUserExists
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Username: username, HashedPassword: hashedPassword}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return errUserExists
		}
		return err
	}
	return nil
}

// Authenticate verifies the operator credentials.
func Authenticate(username, password string) (models.User, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
