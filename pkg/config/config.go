package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%s is required", EnvDBDSN)
	}
	if mode := cfg.App.NormalizedAuthMode(); mode != AuthModeToken && mode != AuthModeOpen {
		return nil, fmt.Errorf("invalid auth mode %q", cfg.App.AuthMode)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TIMEEASY_APP_ENV" required:"true"`
	Port         string `envconfig:"TIMEEASY_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TIMEEASY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TIMEEASY_LOG_WARN_STACK" default:"false"`
	AuthMode     string `envconfig:"TIMEEASY_APP_AUTH_MODE" default:"token"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// NormalizedAuthMode lower-cases and trims the configured auth mode.
func (a AppConfig) NormalizedAuthMode() string {
	mode := strings.ToLower(strings.TrimSpace(a.AuthMode))
	if mode == "" {
		return AuthModeToken
	}
	return mode
}

// OpenMode reports whether record routes skip the bearer-token gate.
func (a AppConfig) OpenMode() bool {
	return a.NormalizedAuthMode() == AuthModeOpen
}

type DBConfig struct {
	DSN string `envconfig:"TIMEEASY_DB_DSN"`

	MaxOpenConns    int           `envconfig:"TIMEEASY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TIMEEASY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TIMEEASY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TIMEEASY_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TIMEEASY_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TIMEEASY_REDIS_ADDR"`
	Password     string        `envconfig:"TIMEEASY_REDIS_PASSWORD"`
	DB           int           `envconfig:"TIMEEASY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TIMEEASY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TIMEEASY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TIMEEASY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TIMEEASY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TIMEEASY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TIMEEASY_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TIMEEASY_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"TIMEEASY_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"TIMEEASY_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TIMEEASY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TIMEEASY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TIMEEASY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TIMEEASY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TIMEEASY_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"TIMEEASY_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TIMEEASY_AUTO_MIGRATE" default:"false"`
}
