// Package config defines the process configuration and its layered loader.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// DBDriver is either "postgres" or "sqlite".
	DBDriver      string        `koanf:"db_driver"`
	DBHost        string        `koanf:"db_host"`
	DBPort        string        `koanf:"db_port"`
	DBUser        string        `koanf:"db_user"`
	DBPassword    string        `koanf:"db_password"`
	DBName        string        `koanf:"db_name"`
	DBSSLMode     string        `koanf:"db_sslmode"`
	DBInstance    string        `koanf:"db_instance"`
	DBConnTimeout time.Duration `koanf:"db_conn_timeout"`
	SQLitePath    string        `koanf:"sqlite_path"`
	RunMigrations bool          `koanf:"run_migrations"`

	RedisHost     string        `koanf:"redis_host"`
	RedisPort     string        `koanf:"redis_port"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`

	JWTSecret     string        `koanf:"jwt_secret"`
	JWTExpiration time.Duration `koanf:"jwt_expiration"`

	// FallbackYear is served when no year is requested and none is active.
	FallbackYear int `koanf:"fallback_year"`

	CORSOrigins []string `koanf:"cors_origins"`

	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	MetricsEnabled bool `koanf:"metrics_enabled"`

	// Admin* describe the superuser cmd/seed creates when it does not exist yet.
	AdminUsername string `koanf:"admin_username"`
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// LoginRateLimit caps login attempts per client IP per minute. 0 disables it.
	LoginRateLimit int `koanf:"login_rate_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		DBDriver:        "postgres",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBName:          "topbrands",
		DBSSLMode:       "disable",
		DBConnTimeout:   60 * time.Second,
		SQLitePath:      "topbrands.db",
		RedisHost:       "localhost",
		RedisPort:       "6379",
		CacheTTL:        5 * time.Minute,
		JWTExpiration:   24 * time.Hour,
		FallbackYear:    2025,
		CORSOrigins:     []string{"http://localhost:3000"},
		DefaultPageSize: 20,
		MaxPageSize:     100,
		MetricsEnabled:  true,
		AdminUsername:   "admin",
		ShutdownTimeout: 10 * time.Second,
		LoginRateLimit:  10,
	}
}

// RedisAddr joins host and port.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
