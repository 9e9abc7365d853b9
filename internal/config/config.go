package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

var (
	ErrUnknownStorage = errors.New("unknown storage")
	ErrInvalidDepth   = errors.New("engine max-depth must be -1 or positive")
)

type Config struct {
	LogLevel string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	GameTTL  time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"24h"`
	Redis    Redis         `yaml:"redis"`
	Engine   Engine        `yaml:"engine"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Engine - defaults for new games. Depth -1 searches to the end of the game.
// The switches are negative because cleanenv replaces zero values with env-default.
type Engine struct {
	MaxDepth         int  `yaml:"max-depth" env:"ENGINE_MAX_DEPTH" env-default:"-1"`
	DisableShortcuts bool `yaml:"disable-shortcuts" env:"ENGINE_DISABLE_SHORTCUTS"`
	DisablePruning   bool `yaml:"disable-pruning" env:"ENGINE_DISABLE_PRUNING"`
}

// Load - reads the yaml file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	if that.Engine.MaxDepth == 0 || that.Engine.MaxDepth < -1 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, that.Engine.MaxDepth)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
