package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

func main() {
	_ = godotenv.Load() // allow .env for local runs
	cfg := loadConfig()
	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./nativus migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg.DBPath)
		logrus.Info("migration and seeding completed")
		return
	}

	initDB(cfg.DBPath)

	r := gin.Default()
	r.Use(requestMetrics())
	setupRoutes(r)

	logrus.WithField("addr", cfg.Addr).Info("starting server")
	if err := r.Run(cfg.Addr); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
