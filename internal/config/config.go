package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"     validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"   validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"       validate:"required"`
	Segment   SegmentConfig   `mapstructure:"segment"    validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// SegmentConfig bounds the work done by segmentation checks.
type SegmentConfig struct {
	MaxTextLength    int `mapstructure:"max_text_length"    validate:"required,gt=0"`
	MaxWords         int `mapstructure:"max_words"          validate:"required,gt=0"`
	MaxWordLength    int `mapstructure:"max_word_length"    validate:"required,gt=0"`
	MaxBatchSize     int `mapstructure:"max_batch_size"     validate:"required,gt=0"`
	BatchConcurrency int `mapstructure:"batch_concurrency"  validate:"required,gt=0"`
	CacheSize        int `mapstructure:"cache_size"         validate:"required,gt=0"`
}

// RateLimitConfig configures the token bucket applied to API requests.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst"               validate:"gt=0"`
}
