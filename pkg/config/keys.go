package config

// EnvPrefix is applied by envconfig to struct fields without an explicit tag.
const EnvPrefix = "INVENTORY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "INVENTORY_APP_ENV"
	EnvPort     = "INVENTORY_APP_PORT"
	EnvLogLevel = "INVENTORY_LOG_LEVEL"

	EnvDBDSN      = "INVENTORY_DB_DSN"
	EnvDBHost     = "INVENTORY_DB_HOST"
	EnvDBPort     = "INVENTORY_DB_PORT"
	EnvDBUser     = "INVENTORY_DB_USER"
	EnvDBPassword = "INVENTORY_DB_PASSWORD"
	EnvDBName     = "INVENTORY_DB_NAME"

	EnvRedisURL = "INVENTORY_REDIS_URL"

	EnvJWTSecret              = "INVENTORY_JWT_SECRET"
	EnvJWTIssuer              = "INVENTORY_JWT_ISSUER"
	EnvJWTExpMins             = "INVENTORY_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "INVENTORY_REFRESH_TOKEN_TTL_MINUTES"

	EnvMailFrom = "INVENTORY_MAIL_FROM"
	EnvMailHost = "INVENTORY_SMTP_HOST"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
