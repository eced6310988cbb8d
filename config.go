package main

import "os"

// Config holds the runtime settings. Everything is env-driven: bind address,
// database file location and the JWT signing secret.
type Config struct {
	Addr      string
	DBPath    string
	JWTSecret string
}

func loadConfig() Config {
	cfg := Config{
		Addr:      ":8081",
		DBPath:    "data/nativus.db",
		JWTSecret: "dev-insecure-secret-change", // development fallback
	}
	if v := os.Getenv("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	return cfg
}
