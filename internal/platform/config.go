package platform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/noteboard/pkg/adapters/httpapi"
	"github.com/aretw0/noteboard/pkg/adapters/terminal"
	"github.com/aretw0/noteboard/pkg/core"
)

// EnvPrefix prefixes environment overrides, e.g. NOTEBOARD_API_BASE_URL.
const EnvPrefix = "NOTEBOARD"

// Config is the file/env configuration of the CLI.
type Config struct {
	API struct {
		BaseURL   string        `mapstructure:"base_url"`
		Timeout   time.Duration `mapstructure:"timeout"`
		RateLimit float64       `mapstructure:"rate_limit"`
		Burst     int           `mapstructure:"burst"`
	} `mapstructure:"api"`

	Storage struct {
		Dir      string `mapstructure:"dir"`
		LikesKey string `mapstructure:"likes_key"`
	} `mapstructure:"storage"`

	Board struct {
		RequireRecipient bool   `mapstructure:"require_recipient"`
		AnonymousLabel   string `mapstructure:"anonymous_label"`
	} `mapstructure:"board"`

	Display struct {
		Width int `mapstructure:"width"`
	} `mapstructure:"display"`
}

// NewViper returns a viper instance with defaults and environment overrides applied.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", httpapi.DefaultBaseURL)
	v.SetDefault("api.timeout", httpapi.DefaultTimeout)
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.burst", 1)

	v.SetDefault("storage.dir", DefaultStorageDir())
	v.SetDefault("storage.likes_key", core.DefaultLikesKey)

	v.SetDefault("board.require_recipient", true)
	v.SetDefault("board.anonymous_label", terminal.DefaultAnonymousLabel)

	v.SetDefault("display.width", terminal.DefaultWidth)
}

// LoadConfig reads configuration into a Config.
// An explicit file must exist; otherwise noteboard.yaml is searched in
// ConfigPaths and its absence is not an error.
func LoadConfig(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(strings.TrimSuffix(ConfigFileName, ".yaml"))
		v.SetConfigType("yaml")
		for _, path := range ConfigPaths() {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that can never work.
func (c *Config) Validate() error {
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative")
	}
	if c.Storage.LikesKey == "" {
		return fmt.Errorf("storage.likes_key must not be empty")
	}
	return nil
}

// Options converts the configuration into functional options for Open.
func (c *Config) Options() []Option {
	return []Option{
		WithBaseURL(c.API.BaseURL),
		WithTimeout(c.API.Timeout),
		WithRateLimit(c.API.RateLimit, c.API.Burst),
		WithStorageDir(c.Storage.Dir),
		WithLikesKey(c.Storage.LikesKey),
		WithRecipientRequired(c.Board.RequireRecipient),
		WithAnonymousLabel(c.Board.AnonymousLabel),
		WithWidth(c.Display.Width),
	}
}
