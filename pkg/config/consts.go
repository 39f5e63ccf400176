package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "TIMEEASY"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Auth modes: token-gated (default) or fully open with caller-supplied user_id.
const (
	AuthModeToken = "token"
	AuthModeOpen  = "open"
)

const (
	EnvAppEnv                 = "TIMEEASY_APP_ENV"
	EnvPort                   = "TIMEEASY_APP_PORT"
	EnvAuthMode               = "TIMEEASY_APP_AUTH_MODE"
	EnvDBDSN                  = "TIMEEASY_DB_DSN"
	EnvRedisURL               = "TIMEEASY_REDIS_URL"
	EnvJWTSecret              = "TIMEEASY_JWT_SECRET"
	EnvJWTIssuer              = "TIMEEASY_JWT_ISSUER"
	EnvJWTExpMins             = "TIMEEASY_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TIMEEASY_REFRESH_TOKEN_TTL_MINUTES"
)
