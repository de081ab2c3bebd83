package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"RentMarket/internal/model"
)

// Config holds all daemon configuration.
type Config struct {
	Store struct {
		DBPath string `yaml:"db_path"`
	} `yaml:"store"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Market struct {
		CoreSymbol model.Symbol `yaml:"core_symbol"`
		// TotalStake is a fixed network stake reference. StakeFile, when
		// set, takes precedence and is re-read on every action.
		TotalStake int64  `yaml:"total_stake"`
		StakeFile  string `yaml:"stake_file"`
	} `yaml:"market"`
	Schedule struct {
		TickCron string `yaml:"tick_cron"`
		MaxBatch uint16 `yaml:"max_batch"`
		Caller   string `yaml:"caller"`
	} `yaml:"schedule"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Defaults
	if cfg.Store.DBPath == "" {
		cfg.Store.DBPath = "data/rentbw.db"
	}
	if cfg.Market.CoreSymbol == (model.Symbol{}) {
		cfg.Market.CoreSymbol = model.Symbol{Precision: 4, Code: "EOS"}
	}
	if cfg.Schedule.TickCron == "" {
		cfg.Schedule.TickCron = "0 * * * * *"
	}
	if cfg.Schedule.MaxBatch == 0 {
		cfg.Schedule.MaxBatch = 10
	}
	if cfg.Schedule.Caller == "" {
		cfg.Schedule.Caller = "rentbw.sched"
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("RENTBW_DB_PATH"); v != "" {
		c.Store.DBPath = v
	}
	if v := os.Getenv("RENTBW_SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("RENTBW_TICK_CRON"); v != "" {
		c.Schedule.TickCron = v
	}
	if v := os.Getenv("RENTBW_METRICS_ADDR"); v != "" {
		c.Metrics.Addr = v
	}
	if v := os.Getenv("RENTBW_MAX_BATCH"); v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("RENTBW_MAX_BATCH: %w", err)
		}
		c.Schedule.MaxBatch = uint16(n)
	}
	if v := os.Getenv("RENTBW_CORE_SYMBOL"); v != "" {
		sym, err := model.ParseSymbol(v)
		if err != nil {
			return fmt.Errorf("RENTBW_CORE_SYMBOL: %w", err)
		}
		c.Market.CoreSymbol = sym
	}
	if v := os.Getenv("RENTBW_TOTAL_STAKE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("RENTBW_TOTAL_STAKE: %w", err)
		}
		c.Market.TotalStake = n
	}
	return nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	if err := c.Market.CoreSymbol.Validate(); err != nil {
		return fmt.Errorf("market.core_symbol: %w", err)
	}
	if c.Market.TotalStake < 0 {
		return fmt.Errorf("market.total_stake must not be negative")
	}
	if c.Schedule.MaxBatch == 0 {
		return fmt.Errorf("schedule.max_batch must be positive")
	}
	return nil
}

// LoadProposal decodes a configure proposal. Keys left out of the file
// leave the corresponding setting unchanged; unknown keys are rejected.
func LoadProposal(path string) (model.ConfigUpdate, error) {
	var u model.ConfigUpdate
	data, err := os.ReadFile(path)
	if err != nil {
		return u, fmt.Errorf("read proposal: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&u); err != nil && !errors.Is(err, io.EOF) {
		return u, fmt.Errorf("parse proposal: %w", err)
	}
	return u, nil
}
