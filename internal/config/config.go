package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mrsobakin/seabattle/internal/game/field"
)

type Config struct {
	BoardSize int

	// Total thinking time of the user. Zero means no limit.
	ThinkLimit    time.Duration
	GlobalTimeout time.Duration

	Addr     string
	MaxJobs  int
	LogLevel string

	// Zero means seeding from the clock.
	Seed int64
}

func Default() Config {
	return Config{
		BoardSize:     field.DefaultConfiguration().Size,
		GlobalTimeout: 7 * time.Minute,
		Addr:          "127.0.0.1:4239",
		MaxJobs:       8,
		LogLevel:      "info",
	}
}

// Field configuration: the default fleet on a board of the
// configured size.
func (c *Config) Configuration() field.Configuration {
	conf := field.DefaultConfiguration()
	conf.Size = c.BoardSize
	return conf
}

// Loads configuration from the environment, on top of defaults.
//
// Variables from `envFile` are loaded first, without overriding the
// ones already set. Missing file is not an error.
func Load(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	c := Default()

	params := []struct {
		name  string
		parse func(string) error
	}{
		{"SEABATTLE_BOARD_SIZE", intParser(&c.BoardSize)},
		{"SEABATTLE_MAX_JOBS", intParser(&c.MaxJobs)},
		{"SEABATTLE_THINK_LIMIT", durationParser(&c.ThinkLimit)},
		{"SEABATTLE_GLOBAL_TIMEOUT", durationParser(&c.GlobalTimeout)},
		{"SEABATTLE_SEED", func(s string) (err error) {
			c.Seed, err = strconv.ParseInt(s, 10, 64)
			return
		}},
		{"SEABATTLE_ADDR", func(s string) error {
			c.Addr = s
			return nil
		}},
		{"SEABATTLE_LOG_LEVEL", func(s string) error {
			c.LogLevel = s
			return nil
		}},
	}

	for _, p := range params {
		val, ok := os.LookupEnv(p.name)
		if !ok {
			continue
		}
		if err := p.parse(val); err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", p.name, err)
		}
	}

	if err := c.IsValid(); err != nil {
		return Config{}, err
	}

	return c, nil
}

func (c *Config) IsValid() error {
	if err := c.Configuration().IsValid(); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	if c.MaxJobs <= 0 {
		return fmt.Errorf("non-positive job limit: %d", c.MaxJobs)
	}

	if c.ThinkLimit < 0 || c.GlobalTimeout < 0 {
		return errors.New("negative timeout")
	}

	return nil
}

func intParser(dst *int) func(string) error {
	return func(s string) (err error) {
		*dst, err = strconv.Atoi(s)
		return
	}
}

func durationParser(dst *time.Duration) func(string) error {
	return func(s string) (err error) {
		*dst, err = time.ParseDuration(s)
		return
	}
}
