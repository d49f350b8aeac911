package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/DoyleJ11/bracket-spectator/internal/engine"
	"github.com/DoyleJ11/bracket-spectator/internal/roster"
)

// ErrRosterTooLarge means the roster has more names than the bracket built
// from PoolSize can seat.
var ErrRosterTooLarge = errors.New("roster does not fit the pool")

type Config struct {
	Addr       string
	PoolSize   int
	Hero       string
	Seed       uint64
	LogLevel   zapcore.Level
	RosterFile string
}

func Default() Config {
	return Config{
		Addr:     ":8080",
		PoolSize: roster.DefaultPoolSize,
		LogLevel: zapcore.InfoLevel,
	}
}

// Load reads the process environment, after applying any .env files that exist.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, reporting every invalid variable at once.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	var errs error

	if v, ok := lookup("SPECTATOR_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("SPECTATOR_POOL_SIZE"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPECTATOR_POOL_SIZE: %w", err))
		} else {
			cfg.PoolSize = n
		}
	}
	if v, ok := lookup("SPECTATOR_HERO"); ok {
		cfg.Hero = v
	}
	if v, ok := lookup("SPECTATOR_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPECTATOR_SEED: %w", err))
		} else {
			cfg.Seed = n
		}
	}
	if v, ok := lookup("SPECTATOR_LOG_LEVEL"); ok && v != "" {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPECTATOR_LOG_LEVEL: %w", err))
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v, ok := lookup("SPECTATOR_ROSTER_FILE"); ok {
		cfg.RosterFile = v
	}

	errs = multierr.Append(errs, cfg.Validate())
	if errs != nil {
		return Config{}, errs
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs error
	if c.Addr == "" {
		errs = multierr.Append(errs, errors.New("listen address is empty"))
	}
	if c.PoolSize < 1 {
		errs = multierr.Append(errs, fmt.Errorf("pool size must be positive, got %d", c.PoolSize))
	}
	return errs
}

// Roster returns the participant pool, read from RosterFile when set, and
// checks it against PoolSize and Hero.
func (c Config) Roster() ([]string, error) {
	names := roster.Default(c.PoolSize)
	if c.RosterFile != "" {
		f, err := os.Open(c.RosterFile)
		if err != nil {
			return nil, fmt.Errorf("open roster: %w", err)
		}
		defer f.Close()
		if names, err = roster.Load(f); err != nil {
			return nil, err
		}
	}
	if err := c.checkRoster(names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c Config) checkRoster(names []string) error {
	var errs error
	if size := engine.NextPowerOfTwo(c.PoolSize); len(names) > size {
		errs = multierr.Append(errs, fmt.Errorf("%w: %d names for a bracket of %d (pool size %d)",
			ErrRosterTooLarge, len(names), size, c.PoolSize))
	}
	if c.Hero != "" && !slices.Contains(names, c.Hero) {
		errs = multierr.Append(errs, fmt.Errorf("%w: %q", roster.ErrUnknownHero, c.Hero))
	}
	return errs
}
