package config

const (
	EnvPrefix = "COFFEE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv          = "COFFEE_APP_ENV"
	EnvPort            = "COFFEE_APP_PORT"
	EnvLogLevel        = "COFFEE_LOG_LEVEL"
	EnvShippingFee     = "COFFEE_SHIPPING_FEE"
	EnvCatalogPath     = "COFFEE_CATALOG_PATH"
	EnvSessionKey      = "COFFEE_SESSION_KEY"
	EnvCORSOrigins     = "COFFEE_CORS_ORIGINS"
	EnvStorageDriver   = "COFFEE_STORAGE_DRIVER"
	EnvDBDSN           = "COFFEE_DB_DSN"
	EnvDBSQLitePath    = "COFFEE_DB_SQLITE_PATH"
	EnvDBAutoMigrate   = "COFFEE_DB_AUTO_MIGRATE"
	EnvRedisURL        = "COFFEE_REDIS_URL"
	EnvRedisAddr       = "COFFEE_REDIS_ADDR"
	EnvShutdownTimeout = "COFFEE_SHUTDOWN_TIMEOUT"
)
