package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "flight_booking_db"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultBootstrapTimeout = 120 * time.Second

	DefaultAppUserEnabled  = true
	DefaultAppUserName     = "flight_app"
	DefaultAppUserPassword = "flight_app_password"
	DefaultAppUserRole     = "readWrite"

	DefaultSeedEnabled = true

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultPort            = "8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMetricsTimeout  = 5 * time.Second
	DefaultRequestTimeout  = 10 * time.Second
)

// AppUserRoles are the built-in database roles the application user may be granted.
var AppUserRoles = []string{"read", "readWrite", "dbAdmin", "dbOwner"}
