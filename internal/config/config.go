// Package config loads runtime settings from configs/config.yml with
// AQUASCAPE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AQUASCAPE"

// Lock backends accepted by scheduler.lock.backend.
const (
	LockAuto     = "auto"
	LockPostgres = "postgres"
	LockRedis    = "redis"
	LockLocal    = "local"
	LockNone     = "none"
)

const defaultSigningKey = "change-me"

type Config struct {
	Port string

	Log struct {
		Level  string
		Format string
	}

	DB struct {
		Driver       string
		Path         string
		DSN          string
		MaxOpenConns int `mapstructure:"max_open_conns"`
		MaxIdleConns int `mapstructure:"max_idle_conns"`
	}

	Storage struct {
		Timeout time.Duration
	}

	Scheduler struct {
		Interval time.Duration
		Embedded bool
		Timezone string
		Lock     struct {
			Backend string
			ID      int64
			TTL     time.Duration
		}
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Auth struct {
		SigningKey  string        `mapstructure:"signing_key"`
		TokenTTL    time.Duration `mapstructure:"token_ttl"`
		KeyCacheTTL time.Duration `mapstructure:"key_cache_ttl"`
	}

	Device struct {
		APIURL          string `mapstructure:"api_url"`
		UID             string `mapstructure:"uid"`
		Username        string
		Password        string
		Token           string
		PollInterval    time.Duration `mapstructure:"poll_interval"`
		PublishInterval time.Duration `mapstructure:"publish_interval"`
	}

	Danger struct {
		TempMax float64 `mapstructure:"temp_max"`
		PHMin   float64 `mapstructure:"ph_min"`
		PHMax   float64 `mapstructure:"ph_max"`
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "aquascape.db")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("storage.timeout", 5*time.Second)

	v.SetDefault("scheduler.interval", 60*time.Second)
	v.SetDefault("scheduler.embedded", true)
	v.SetDefault("scheduler.timezone", "UTC")
	v.SetDefault("scheduler.lock.backend", LockAuto)
	v.SetDefault("scheduler.lock.id", 987654321)
	v.SetDefault("scheduler.lock.ttl", 2*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.signing_key", defaultSigningKey)
	v.SetDefault("auth.token_ttl", 12*time.Hour)
	v.SetDefault("auth.key_cache_ttl", 5*time.Minute)

	v.SetDefault("device.api_url", "http://localhost:8080")
	v.SetDefault("device.uid", "")
	v.SetDefault("device.username", "")
	v.SetDefault("device.password", "")
	v.SetDefault("device.token", "")
	v.SetDefault("device.poll_interval", 15*time.Second)
	v.SetDefault("device.publish_interval", 20*time.Second)

	v.SetDefault("danger.temp_max", 28.0)
	v.SetDefault("danger.ph_min", 6.0)
	v.SetDefault("danger.ph_max", 8.5)
}

// New returns a viper instance with defaults and env binding, reading the
// config file when one is found. file may be empty to search ./configs.
func New(file string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Load reads the configuration and validates it.
func Load(file string) (Config, error) {
	v, err := New(file)
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	c.Scheduler.Lock.Backend = strings.ToLower(strings.TrimSpace(c.Scheduler.Lock.Backend))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the process cannot start with.
func (c Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("db.driver: unsupported value %q", c.DB.Driver)
	}
	if c.DB.Driver == "postgres" && c.DB.DSN == "" {
		return errors.New("db.dsn is required for the postgres driver")
	}

	switch c.Scheduler.Lock.Backend {
	case LockAuto, LockPostgres, LockLocal, LockNone:
	case LockRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis.addr is required for the redis lock backend")
		}
	default:
		return fmt.Errorf("scheduler.lock.backend: unsupported value %q", c.Scheduler.Lock.Backend)
	}
	if c.Scheduler.Lock.Backend == LockPostgres && c.DB.Driver != "postgres" {
		return errors.New("scheduler.lock.backend=postgres needs db.driver=postgres")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("scheduler.timezone: %w", err)
	}
	if c.Scheduler.Interval <= 0 {
		return errors.New("scheduler.interval must be positive")
	}
	if c.Auth.SigningKey == "" {
		return errors.New("auth.signing_key must not be empty")
	}
	return nil
}

// Location returns the zone daily schedules are evaluated in.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultSigningKey reports whether the shipped placeholder key is in use.
func (c Config) DefaultSigningKey() bool {
	return c.Auth.SigningKey == defaultSigningKey
}
