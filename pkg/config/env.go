package config

const EnvPrefix = "AURANA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	PageStoreMemory = "memory"
	PageStoreRedis  = "redis"
)

const (
	EnvAppEnv    = "AURANA_APP_ENV"
	EnvPort      = "AURANA_APP_PORT"
	EnvDBDriver  = "AURANA_DB_DRIVER"
	EnvDBDSN     = "AURANA_DB_DSN"
	EnvRedisURL  = "AURANA_REDIS_URL"
	EnvRedisAddr = "AURANA_REDIS_ADDR"
	EnvPageStore = "AURANA_PAGE_STORE"
	EnvPageTTL   = "AURANA_PAGE_TTL"
)
