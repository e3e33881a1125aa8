package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmehdipour/email-tracker/internal/db"
	"github.com/spf13/viper"
)

//go:embed defaults.yaml
var defaults []byte

const (
	EnvProduction = "production"

	DriverMySQL = "mysql"
	DriverRedis = "redis"
)

// ProductionProfile is merged on top of the user config when the environment is production.
const ProductionProfile = "config.production.yaml"

// ---- Root ----

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Store    StoreConfig    `mapstructure:"store"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Tracking TrackingConfig `mapstructure:"tracking"`
}

// ---- Leaf structs ----

type AppConfig struct {
	Environment string `mapstructure:"environment"`
	Version     string `mapstructure:"version"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver           string        `mapstructure:"driver"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout"`
}

type MySQLConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idletime"`
	PingTimeout     time.Duration `mapstructure:"ping_timeout"`
	Table           string        `mapstructure:"table"`
}

type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

type TrackingConfig struct {
	Tenants []string `mapstructure:"tenants"`
}

func (c Config) IsProduction() bool { return c.App.Environment == EnvProduction }

// MySQLOpts adapts the pool settings for db.NewMySQLConnection.
func (c MySQLConfig) MySQLOpts() db.MySQLOpts {
	return db.MySQLOpts{
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		PingTimeout:     c.PingTimeout,
	}
}

// RedisOpts adapts the client settings for db.NewRedisClient.
func (c RedisConfig) RedisOpts() db.RedisOpts {
	return db.RedisOpts{
		Addr:         c.Addr,
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		ClientName:   "email-tracker",
	}
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMySQL:
		if strings.TrimSpace(c.MySQL.DSN) == "" {
			return fmt.Errorf("mysql.dsn is required for driver %q", c.Store.Driver)
		}
		if !db.ValidTableName(c.MySQL.Table) {
			return fmt.Errorf("invalid mysql.table %q", c.MySQL.Table)
		}
	case DriverRedis:
		if strings.TrimSpace(c.Redis.Addr) == "" {
			return fmt.Errorf("redis.addr is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store.driver %q (want %s|%s)", c.Store.Driver, DriverMySQL, DriverRedis)
	}

	n := 0
	for _, t := range c.Tracking.Tenants {
		if strings.TrimSpace(t) != "" {
			n++
		}
	}
	if n == 0 {
		return fmt.Errorf("tracking.tenants must list at least one tenant")
	}
	return nil
}

// Load reads embedded defaults, merges user YAML (if provided), merges the production
// profile next to it when ENVIRONMENT=production, and applies env overrides (EMAILTRACKER_*).
func Load(path string) (Config, error) {
	v := viper.New()

	// embedded defaults
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return Config{}, err
	}

	if err := mergeIfExists(v, path); err != nil {
		return Config{}, err
	}

	// env override (EMAILTRACKER_*), ENVIRONMENT kept for existing deployments
	v.SetEnvPrefix("EMAILTRACKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("app.environment", "EMAILTRACKER_APP_ENVIRONMENT", "ENVIRONMENT"); err != nil {
		return Config{}, err
	}

	if v.GetString("app.environment") == EnvProduction {
		dir := "."
		if path != "" {
			dir = filepath.Dir(path)
		}
		if err := mergeIfExists(v, filepath.Join(dir, ProductionProfile)); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeIfExists(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}
