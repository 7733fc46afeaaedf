package config

import (
	"context"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/endfield-gacha/internal/storage"
)

const (
	envPrefix = "gacha"
	// FileEnv names the variable holding an optional YAML config file path.
	FileEnv = "GACHA_CONFIG_FILE"
)

type Config struct {
	// DevMode enables trace logging.
	DevMode bool `yaml:"devMode" split_words:"true"`

	// StoreDriver selects where the state is saved.
	// Valid values are: sqlite, redis, memory (nothing survives the process).
	StoreDriver string `yaml:"storeDriver" split_words:"true" validate:"oneof=sqlite redis memory"`

	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `yaml:"sqlitePath" envconfig:"SQLITE_PATH" validate:"required_if=StoreDriver sqlite"`

	// RedisURL is used by the redis driver. See https://pkg.go.dev/github.com/redis/go-redis/v9#ParseURL
	// for more information on how to construct a Redis URL.
	RedisURL string `yaml:"redisUrl" split_words:"true" validate:"required_if=StoreDriver redis"`

	// StoreKey is the key the state is saved under.
	StoreKey string `yaml:"storeKey" split_words:"true" validate:"required"`

	// CatalogPath is an optional YAML file merged over the built-in reward catalog.
	CatalogPath string `yaml:"catalogPath" split_words:"true"`

	// Seed makes every draw reproducible when non-zero.
	Seed uint64 `yaml:"seed"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		StoreDriver: "sqlite",
		SQLitePath:  "gacha.db",
		RedisURL:    "redis://127.0.0.1:6379/1",
		StoreKey:    storage.DefaultKey,
	}
}

var validate = validator.New()

// Parse layers the defaults, the YAML file named by GACHA_CONFIG_FILE and the
// GACHA_* environment, in that order. A .env file in the working directory is
// loaded first if present.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("failed to load .env file")
	}

	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		if err := readFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration from environment")
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return errors.Wrapf(err, "parse config %s", path)
	}
	return nil
}

// OpenStore opens the backend selected by StoreDriver.
func (c *Config) OpenStore(ctx context.Context) (*storage.Store, error) {
	var (
		backend storage.Backend
		err     error
	)
	switch c.StoreDriver {
	case "sqlite":
		backend, err = storage.OpenSQLite(c.SQLitePath)
	case "redis":
		backend, err = storage.OpenRedis(ctx, c.RedisURL)
	case "memory":
		backend = storage.NewMemory()
	default:
		return nil, errors.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().Str("driver", c.StoreDriver).Str("key", c.StoreKey).Msg("store opened")
	return storage.New(backend, c.StoreKey), nil
}
