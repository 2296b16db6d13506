package config

// EnvPrefix is passed to envconfig; explicit envconfig tags carry the full
// variable names, so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "RPBAZAAR_APP_ENV"
	EnvPort     = "RPBAZAAR_APP_PORT"
	EnvLogLevel = "RPBAZAAR_LOG_LEVEL"

	EnvDBDSN      = "RPBAZAAR_DB_DSN"
	EnvDBHost     = "RPBAZAAR_DB_HOST"
	EnvDBPort     = "RPBAZAAR_DB_PORT"
	EnvDBUser     = "RPBAZAAR_DB_USER"
	EnvDBPassword = "RPBAZAAR_DB_PASSWORD"
	EnvDBName     = "RPBAZAAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
