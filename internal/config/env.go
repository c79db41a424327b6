package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	// DBDSN locates the MySQL store. Never hard-coded in source.
	DBDSN string

	// JWTSecret signs session tokens.
	JWTSecret string

	// AdminUsername/AdminPassword seed the administrative account as a
	// regular hashed credential row with role=admin.
	AdminUsername string
	AdminPassword string

	// LegacyConflictGone keeps the historical 410 status for booking
	// conflicts instead of 409.
	LegacyConflictGone bool
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/bus_booking?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	adminUser := strings.TrimSpace(os.Getenv("ADMIN_USERNAME"))
	if adminUser == "" {
		adminUser = "admin"
	}

	return Env{
		AppAddr:            appAddr,
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:              dsn,
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AdminUsername:      adminUser,
		AdminPassword:      strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		LegacyConflictGone: strings.TrimSpace(os.Getenv("LEGACY_CONFLICT_STATUS")) == "410",
	}
}
