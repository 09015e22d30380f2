package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type SourceConfig struct {
	Enabled  bool
	Endpoint string // empty means the source's public endpoint
}

type Config struct {
	TradeCurrency string          // currency the buy source quotes in
	BuyCommission decimal.Decimal // fraction charged by the buy source
	BuySource     string          // label shown for the buy leg
	DecimalPlaces int32

	Fetch struct {
		TimeoutSeconds int
		MaxConcurrency int
		MaxBodyBytes   int64
	}

	// Sources are merged in registry order; only the keys present here are
	// considered, an unknown key is a configuration error.
	Sources map[string]SourceConfig

	Server struct {
		Port int
	}

	Watch struct {
		Schedule  string
		Amount    decimal.Decimal
		AlertRate decimal.Decimal // zero disables alerts
	}

	Discord struct {
		WebhookUrl string
	}
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// EnabledSources returns the ids of the enabled sources and their endpoint
// overrides.
func (c *Config) EnabledSources() map[string]string {
	enabled := make(map[string]string)
	for id, source := range c.Sources {
		if source.Enabled {
			enabled[id] = source.Endpoint
		}
	}
	return enabled
}

func Default() *Config {
	config := &Config{
		TradeCurrency: "EUR",
		BuyCommission: decimal.RequireFromString("0.025"),
		BuySource:     "b2mn",
		DecimalPlaces: 2,
		Sources: map[string]SourceConfig{
			"bit2me_new":   {Enabled: true},
			"ripio":        {Enabled: true},
			"satoshitango": {Enabled: true},
			"buenbit":      {Enabled: true},
		},
	}
	config.Fetch.TimeoutSeconds = 10
	config.Fetch.MaxConcurrency = 8
	config.Fetch.MaxBodyBytes = 4 << 20
	config.Server.Port = 8080
	config.Watch.Schedule = "@every 1m"
	config.Watch.Amount = decimal.NewFromInt(100)
	return config
}

// Load reads the JSON file at path on top of the defaults. A missing file is
// not an error; a malformed one is.
func Load(path string) (*Config, error) {
	config := Default()

	configBytes, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := json.Unmarshal(configBytes, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func applyEnv(config *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		value, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		config.Server.Port = value
	}
	if timeout := os.Getenv("FETCH_TIMEOUT_SECONDS"); timeout != "" {
		value, err := strconv.Atoi(timeout)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT_SECONDS: %w", err)
		}
		config.Fetch.TimeoutSeconds = value
	}
	if webhook := os.Getenv("DISCORD_WEBHOOK_URL"); webhook != "" {
		config.Discord.WebhookUrl = webhook
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TradeCurrency) == "" {
		return errors.New("TradeCurrency must not be empty")
	}
	if c.BuyCommission.IsNegative() || c.BuyCommission.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("BuyCommission must be in [0, 1), got %s", c.BuyCommission)
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("Fetch.TimeoutSeconds must be positive, got %d", c.Fetch.TimeoutSeconds)
	}
	if c.Fetch.MaxConcurrency <= 0 {
		return fmt.Errorf("Fetch.MaxConcurrency must be positive, got %d", c.Fetch.MaxConcurrency)
	}
	if c.DecimalPlaces < 0 {
		return fmt.Errorf("DecimalPlaces must not be negative, got %d", c.DecimalPlaces)
	}
	return nil
}

// ConfigFile returns the path read by GetConfig.
func ConfigFile() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return "config.json"
}

var once sync.Once
var config *Config

func GetConfig() *Config {
	once.Do(func() {
		var err error
		config, err = Load(ConfigFile())
		if err != nil {
			panic(err)
		}
	})

	return config
}
