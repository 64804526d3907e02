package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/anchal00/blackjack/internal/logger"
)

const (
	StoreSQL    = "sql"
	StoreMemory = "memory"

	DriverSqlite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	Port            string        `env:"BLACKJACK_PORT"             envDefault:"9000"`
	Store           string        `env:"BLACKJACK_STORE"            envDefault:"sql"`
	DBDriver        string        `env:"BLACKJACK_DB_DRIVER"        envDefault:"sqlite3"`
	DB              string        `env:"BLACKJACK_DB"               envDefault:"blackjack"`
	Seed            int64         `env:"BLACKJACK_SEED"`
	LogLevel        string        `env:"BLACKJACK_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"BLACKJACK_LOG_FORMAT"       envDefault:"text"`
	ShutdownTimeout time.Duration `env:"BLACKJACK_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load reads envFile into the process environment, if it exists, and parses
// the result. Variables already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if len(c.Port) == 0 {
		return errors.New("BLACKJACK_PORT not set")
	}
	switch c.Store {
	case StoreSQL:
		if c.DBDriver != DriverSqlite && c.DBDriver != DriverPostgres {
			return fmt.Errorf("unsupported database driver %q", c.DBDriver)
		}
		if len(c.DB) == 0 {
			return errors.New("BLACKJACK_DB not set")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return logger.ValidFormat(c.LogFormat)
}

func (c Config) LoggerOptions() logger.Options {
	return logger.Options{Format: c.LogFormat, Level: c.LogLevel}
}

// DSN returns the data source name for the configured driver. For sqlite the
// database name maps to a file of the same name with a .db suffix.
func (c Config) DSN() string {
	if c.DBDriver == DriverSqlite && c.DB != ":memory:" {
		return c.DB + ".db"
	}
	return c.DB
}
