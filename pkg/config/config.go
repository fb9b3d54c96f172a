package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/angelmondragon/chemstock/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CHEMSTOCK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	// DefaultSQLitePath is the embedded file-backed database used when no
	// external connection string is configured.
	DefaultSQLitePath = "chemstock.db"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Session   SessionConfig
	Inventory InventoryConfig
	Seed      SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Inventory.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHEMSTOCK_APP_ENV" default:"dev"`
	Port         string `envconfig:"CHEMSTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CHEMSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHEMSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CHEMSTOCK_DB_DSN"`
	Driver string `envconfig:"CHEMSTOCK_DB_DRIVER" default:"sqlite"`

	LegacyHost     string `envconfig:"CHEMSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"CHEMSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHEMSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"CHEMSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHEMSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHEMSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHEMSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHEMSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHEMSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHEMSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"CHEMSTOCK_AUTO_MIGRATE" default:"false"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type SessionConfig struct {
	CookieName string        `envconfig:"CHEMSTOCK_SESSION_COOKIE" default:"chemstock_session"`
	TTL        time.Duration `envconfig:"CHEMSTOCK_SESSION_TTL" default:"12h"`
	Secure     bool          `envconfig:"CHEMSTOCK_SESSION_SECURE" default:"false"`

	// RedisURL switches session storage from the in-process store to Redis.
	RedisURL string `envconfig:"CHEMSTOCK_REDIS_URL"`
}

type InventoryConfig struct {
	// DeletePolicy decides the fate of movement history when a product is
	// deleted: cascade, restrict or orphan.
	DeletePolicy string `envconfig:"CHEMSTOCK_DELETE_POLICY" default:"cascade"`
}

func (i InventoryConfig) validate() error {
	if _, err := enums.ParseDeletePolicy(i.DeletePolicy); err != nil {
		return fmt.Errorf("invalid CHEMSTOCK_DELETE_POLICY: %w", err)
	}
	return nil
}

// Policy returns the parsed delete policy. Load has already validated it.
func (i InventoryConfig) Policy() enums.DeletePolicy {
	policy, err := enums.ParseDeletePolicy(i.DeletePolicy)
	if err != nil {
		return enums.DeletePolicyCascade
	}
	return policy
}

type SeedConfig struct {
	AdminUsername string `envconfig:"CHEMSTOCK_SEED_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"CHEMSTOCK_SEED_ADMIN_PASSWORD" default:"admin123"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = DefaultSQLitePath
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"CHEMSTOCK_DB_HOST": db.LegacyHost,
		"CHEMSTOCK_DB_USER": db.LegacyUser,
		"CHEMSTOCK_DB_NAME": db.LegacyName,
	}
	for _, key := range []string{"CHEMSTOCK_DB_HOST", "CHEMSTOCK_DB_USER", "CHEMSTOCK_DB_NAME"} {
		if legacyValues[key] == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either CHEMSTOCK_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
