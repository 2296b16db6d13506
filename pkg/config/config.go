package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App  AppConfig
	DB   DBConfig
	CORS CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RPBAZAAR_APP_ENV" default:"dev"`
	Port         string `envconfig:"RPBAZAAR_APP_PORT" default:"3006"`
	LogLevel     string `envconfig:"RPBAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RPBAZAAR_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"RPBAZAAR_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"RPBAZAAR_DB_DSN"`

	LegacyHost     string `envconfig:"RPBAZAAR_DB_HOST"`
	LegacyPort     int    `envconfig:"RPBAZAAR_DB_PORT" default:"3306"`
	LegacyUser     string `envconfig:"RPBAZAAR_DB_USER"`
	LegacyPassword string `envconfig:"RPBAZAAR_DB_PASSWORD"`
	LegacyName     string `envconfig:"RPBAZAAR_DB_NAME"`

	MaxOpenConns    int           `envconfig:"RPBAZAAR_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"RPBAZAAR_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"RPBAZAAR_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RPBAZAAR_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	ConnectTimeout time.Duration `envconfig:"RPBAZAAR_DB_CONNECT_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"RPBAZAAR_DB_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `envconfig:"RPBAZAAR_DB_WRITE_TIMEOUT" default:"30s"`

	HealthRetries    int           `envconfig:"RPBAZAAR_DB_HEALTH_RETRIES" default:"3"`
	HealthRetryDelay time.Duration `envconfig:"RPBAZAAR_DB_HEALTH_RETRY_DELAY" default:"500ms"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"RPBAZAAR_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	mc := mysql.NewConfig()
	mc.User = db.LegacyUser
	mc.Passwd = db.LegacyPassword
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort)
	mc.DBName = db.LegacyName
	mc.ParseTime = true
	mc.Timeout = db.ConnectTimeout
	mc.ReadTimeout = db.ReadTimeout
	mc.WriteTimeout = db.WriteTimeout

	db.DSN = mc.FormatDSN()
	return nil
}
