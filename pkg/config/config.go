package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/coffee-storefront/pkg/enums"
	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App     AppConfig
	Shop    ShopConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	driver, err := enums.ParseStorageDriver(string(c.Storage.Driver))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStorageDriver, err)
	}
	c.Storage.Driver = driver

	if c.Shop.ShippingFee.IsNegative() {
		return fmt.Errorf("%s must not be negative", EnvShippingFee)
	}
	if strings.TrimSpace(c.Shop.SessionKey) == "" {
		return fmt.Errorf("%s must not be blank", EnvSessionKey)
	}

	switch driver {
	case enums.StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis driver", EnvRedisURL, EnvRedisAddr)
		}
	case enums.StorageDriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	case enums.StorageDriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBSQLitePath)
		}
	}
	return nil
}

type AppConfig struct {
	Env             string        `envconfig:"COFFEE_APP_ENV" required:"true"`
	Port            string        `envconfig:"COFFEE_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"COFFEE_LOG_LEVEL" default:"info"`
	LogWarnStack    bool          `envconfig:"COFFEE_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"COFFEE_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ShopConfig struct {
	ShippingFee decimal.Decimal `envconfig:"COFFEE_SHIPPING_FEE" default:"3.50"`
	CatalogPath string          `envconfig:"COFFEE_CATALOG_PATH"`
	SessionKey  string          `envconfig:"COFFEE_SESSION_KEY" default:"default"`
	CORSOrigins []string        `envconfig:"COFFEE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

type StorageConfig struct {
	Driver enums.StorageDriver `envconfig:"COFFEE_STORAGE_DRIVER" default:"memory"`
}

type DBConfig struct {
	DSN         string `envconfig:"COFFEE_DB_DSN"`
	SQLitePath  string `envconfig:"COFFEE_DB_SQLITE_PATH" default:"coffee.db"`
	AutoMigrate bool   `envconfig:"COFFEE_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"COFFEE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"COFFEE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"COFFEE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COFFEE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COFFEE_REDIS_URL"`
	Address      string        `envconfig:"COFFEE_REDIS_ADDR"`
	Password     string        `envconfig:"COFFEE_REDIS_PASSWORD"`
	DB           int           `envconfig:"COFFEE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COFFEE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COFFEE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COFFEE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COFFEE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COFFEE_REDIS_WRITE_TIMEOUT" default:"5s"`
}
