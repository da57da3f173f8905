package config

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"flightdb/pkg/client"
	"flightdb/pkg/logger"
)

var (
	mongoURIRegex     = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex   = regexp.MustCompile(`(mongodb(\+srv)?://)[^:@/]+(:[^@/]*)?@`)
	invalidDBNameChar = regexp.MustCompile(`[/\\. "$*<>:|?]`)
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	BootstrapTimeout time.Duration

	AppUserEnabled  bool
	AppUserName     string
	AppUserPassword string
	AppUserRole     string

	SeedEnabled bool
	SeedDir     string

	LogLevel  string
	LogFormat string

	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MetricsTimeout  time.Duration
	RequestTimeout  time.Duration

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment, builds the logger and exits the process when the
// configuration is invalid.
func Load(serviceName string) *Config {
	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv reads every setting from the environment without validating it.
func FromEnv() *Config {
	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		BootstrapTimeout: getEnvDuration(EnvBootstrapTimeout, DefaultBootstrapTimeout),

		AppUserEnabled:  getEnvBool(EnvAppUserEnabled, DefaultAppUserEnabled),
		AppUserName:     getEnvStr(EnvAppUserName, DefaultAppUserName),
		AppUserPassword: getEnvStr(EnvAppUserPassword, DefaultAppUserPassword),
		AppUserRole:     getEnvStr(EnvAppUserRole, DefaultAppUserRole),

		SeedEnabled: getEnvBool(EnvSeedEnabled, DefaultSeedEnabled),
		SeedDir:     getEnvStr(EnvSeedDir, ""),

		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		Port:            getEnvStr(EnvPort, DefaultPort),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
		MetricsTimeout:  getEnvDuration(EnvMetricsTimeout, DefaultMetricsTimeout),
		RequestTimeout:  getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	} else if invalidDBNameChar.MatchString(cfg.MongoDatabaseName) || len(cfg.MongoDatabaseName) > 63 {
		errors = append(errors, fmt.Sprintf("MongoDatabaseName is not a valid database name, got: %q", cfg.MongoDatabaseName))
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.BootstrapTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("BootstrapTimeout must be positive, got: %s", cfg.BootstrapTimeout))
	}

	if cfg.AppUserEnabled {
		if cfg.AppUserName == "" {
			errors = append(errors, "AppUserName cannot be empty when the application user is enabled")
		}
		if cfg.AppUserPassword == "" {
			errors = append(errors, "AppUserPassword cannot be empty when the application user is enabled")
		}
		if !slices.Contains(AppUserRoles, cfg.AppUserRole) {
			errors = append(errors, fmt.Sprintf("AppUserRole must be one of %s, got: %s", strings.Join(AppUserRoles, ", "), cfg.AppUserRole))
		}
	}

	if cfg.SeedDir != "" {
		if info, err := os.Stat(cfg.SeedDir); err != nil || !info.IsDir() {
			errors = append(errors, fmt.Sprintf("SeedDir must be an existing directory, got: %s", cfg.SeedDir))
		}
	}

	if f := strings.ToLower(cfg.LogFormat); f != logger.JSON && f != logger.TEXT {
		errors = append(errors, fmt.Sprintf("LogFormat must be 'json' or 'text', got: %s", cfg.LogFormat))
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.MetricsTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MetricsTimeout must be positive, got: %s", cfg.MetricsTimeout))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// UsesDefaultPassword reports whether the application user would be created
// with the well-known default password.
func (cfg *Config) UsesDefaultPassword() bool {
	return cfg.AppUserEnabled && cfg.AppUserPassword == DefaultAppUserPassword
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"bootstrap_timeout", cfg.BootstrapTimeout,
		"app_user_enabled", cfg.AppUserEnabled,
		"app_user_name", cfg.AppUserName,
		"app_user_role", cfg.AppUserRole,
		"app_user_password_set", cfg.AppUserPassword != "",
		"seed_enabled", cfg.SeedEnabled,
		"seed_dir", cfg.SeedDir,
		"log_level", cfg.LogLevel,
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"metrics_timeout", cfg.MetricsTimeout,
		"request_timeout", cfg.RequestTimeout,
	)
	if cfg.UsesDefaultPassword() {
		cfg.Log.Warn("Application user is configured with the default password; set " + EnvAppUserPassword)
	}
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func redactMongoURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
