package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradejournal/risk"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied by ApplyEnv.
const (
	EnvDB             = "TRADEJOURNAL_DB"
	EnvAddr           = "TRADEJOURNAL_ADDR"
	EnvLogLevel       = "TRADEJOURNAL_LOG_LEVEL"
	EnvInitialCapital = "TRADEJOURNAL_INITIAL_CAPITAL"
)

// Config represents the complete journal configuration
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
	Form    FormConfig    `json:"form" yaml:"form"`
}

// JournalConfig selects the trade store
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "sqlite" or "memory"
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// RiskConfig contains capital and advisory pre-trade limits
type RiskConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	MaxRiskPct     float64 `json:"max_risk_pct" yaml:"max_risk_pct"`
	MinRR          float64 `json:"min_rr" yaml:"min_rr"`
	MaxOpenTrades  int     `json:"max_open_trades" yaml:"max_open_trades"`
}

// Policy converts the limits for risk.Evaluate.
func (r RiskConfig) Policy() risk.Policy {
	return risk.Policy{
		MaxRiskPct:    r.MaxRiskPct,
		MinRR:         r.MinRR,
		MaxOpenTrades: r.MaxOpenTrades,
	}
}

type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// FormConfig controls the trade entry workflow
type FormConfig struct {
	CloseDelay string `json:"close_delay,omitempty" yaml:"close_delay,omitempty"` // e.g. "1500ms", "0s"
}

// ParseCloseDelay converts CloseDelay to a duration. Empty means the default.
func (f FormConfig) ParseCloseDelay() (time.Duration, error) {
	if f.CloseDelay == "" {
		return 1500 * time.Millisecond, nil
	}
	return time.ParseDuration(f.CloseDelay)
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// LoadEnv reads .env style files into the process environment. Missing
// files are ignored and existing variables are never overwritten.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays TRADEJOURNAL_* environment variables onto c.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDB); v != "" {
		c.Journal.Type = "sqlite"
		c.Journal.DBPath = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvInitialCapital); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvInitialCapital, err)
		}
		c.Risk.InitialCapital = f
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path is required for sqlite")
		}
	case "memory":
	default:
		return fmt.Errorf("journal.type must be 'sqlite' or 'memory'")
	}
	if c.Risk.MaxRiskPct < 0 || c.Risk.MaxRiskPct > 1 {
		return fmt.Errorf("risk.max_risk_pct must be between 0 and 1")
	}
	if c.Risk.MinRR < 0 {
		return fmt.Errorf("risk.min_rr must not be negative")
	}
	if c.Risk.MaxOpenTrades < 0 {
		return fmt.Errorf("risk.max_open_trades must not be negative")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if d, err := c.Form.ParseCloseDelay(); err != nil {
		return fmt.Errorf("form.close_delay: %w", err)
	} else if d < 0 {
		return fmt.Errorf("form.close_delay must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	p := risk.DefaultPolicy()
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradejournal.db",
		},
		Risk: RiskConfig{
			InitialCapital: 10000,
			MaxRiskPct:     p.MaxRiskPct,
			MinRR:          p.MinRR,
			MaxOpenTrades:  p.MaxOpenTrades,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Log: LogConfig{
			Level: "info",
		},
		Form: FormConfig{
			CloseDelay: "1500ms",
		},
	}
}
