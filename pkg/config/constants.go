package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "bazaar"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv   = "BAZAAR_APP_ENV"
	EnvPort     = "BAZAAR_APP_PORT"
	EnvDBDSN    = "BAZAAR_DB_DSN"
	EnvDBHost   = "BAZAAR_DB_HOST"
	EnvDBUser   = "BAZAAR_DB_USER"
	EnvDBName   = "BAZAAR_DB_NAME"
	EnvRedisURL = "BAZAAR_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
