package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvBootstrapTimeout = "BOOTSTRAP_TIMEOUT"

	EnvAppUserEnabled  = "APP_USER_ENABLED"
	EnvAppUserName     = "APP_USER_NAME"
	EnvAppUserPassword = "APP_USER_PASSWORD"
	EnvAppUserRole     = "APP_USER_ROLE"

	EnvSeedEnabled = "SEED_ENABLED"
	EnvSeedDir     = "SEED_DIR"

	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvPort            = "PORT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
	EnvMetricsTimeout  = "METRICS_TIMEOUT"
	EnvRequestTimeout  = "REQUEST_TIMEOUT"
)
