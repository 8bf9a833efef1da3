// Package settings loads runtime settings for the outbound adapters from
// TRADECHECK_* environment variables and an optional YAML file.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "TRADECHECK"

// Settings holds connection and credential settings. Assessment weights live
// in .tradecheck.yaml, not here.
type Settings struct {
	LogLevel string         `mapstructure:"log_level"`
	StoreDir string         `mapstructure:"store_dir"`
	Gemini   GeminiSettings `mapstructure:"gemini"`
	NHTSA    NHTSASettings  `mapstructure:"nhtsa"`
	Market   MarketSettings `mapstructure:"marketcheck"`
	Redis    RedisSettings  `mapstructure:"redis"`
	MySQL    MySQLSettings  `mapstructure:"mysql"`
	NATS     NATSSettings   `mapstructure:"nats"`
	Retry    RetrySettings  `mapstructure:"retry"`
	Photos   PhotoSettings  `mapstructure:"photos"`
}

type GeminiSettings struct {
	APIKey     string        `mapstructure:"api_key"`
	Model      string        `mapstructure:"model"`
	Endpoint   string        `mapstructure:"endpoint"`
	APIVersion string        `mapstructure:"api_version"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RPS        float64       `mapstructure:"rps"`
}

type NHTSASettings struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type MarketSettings struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Rows     int           `mapstructure:"rows"`
}

type RedisSettings struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	VINTTL   time.Duration `mapstructure:"vin_ttl"`
	CompsTTL time.Duration `mapstructure:"comps_ttl"`
}

type MySQLSettings struct {
	DSN string `mapstructure:"dsn"`
}

type NATSSettings struct {
	URL            string `mapstructure:"url"`
	RequestSubject string `mapstructure:"request_subject"`
	EventSubject   string `mapstructure:"event_subject"`
	QueueGroup     string `mapstructure:"queue_group"`
}

type RetrySettings struct {
	Attempts    int           `mapstructure:"attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
}

type PhotoSettings struct {
	BaseDir string        `mapstructure:"base_dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// setDefaults registers every key; AutomaticEnv only fills keys viper knows.
func setDefaults(v *viper.Viper) {
	for _, key := range []string{
		"gemini.api_key", "marketcheck.api_key", "redis.addr", "redis.password",
		"mysql.dsn", "photos.base_dir",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("redis.db", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("store_dir", ".tradecheck")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.endpoint", "https://generativelanguage.googleapis.com/")
	v.SetDefault("gemini.api_version", "v1beta")
	v.SetDefault("gemini.timeout", 90*time.Second)
	v.SetDefault("gemini.rps", 1.0)
	v.SetDefault("nhtsa.endpoint", "https://vpic.nhtsa.dot.gov/api")
	v.SetDefault("nhtsa.timeout", 10*time.Second)
	v.SetDefault("marketcheck.endpoint", "https://api.marketcheck.com/v2")
	v.SetDefault("marketcheck.timeout", 15*time.Second)
	v.SetDefault("marketcheck.rows", 50)
	v.SetDefault("redis.vin_ttl", 24*time.Hour)
	v.SetDefault("redis.comps_ttl", time.Hour)
	v.SetDefault("nats.url", "nats://127.0.0.1:4222")
	v.SetDefault("nats.request_subject", "tradecheck.submissions")
	v.SetDefault("nats.event_subject", "tradecheck.assessments")
	v.SetDefault("nats.queue_group", "tradecheck-workers")
	v.SetDefault("retry.attempts", 5)
	v.SetDefault("retry.initial_wait", 100*time.Millisecond)
	v.SetDefault("retry.max_wait", 5*time.Second)
	v.SetDefault("photos.timeout", 30*time.Second)
}

// Load reads settings from path (optional) and the environment. Environment
// variables use the TRADECHECK_ prefix with dots replaced by underscores,
// e.g. TRADECHECK_GEMINI_API_KEY.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks values that every command depends on. Credentials are
// checked by RequireGemini and friends when a command actually needs them.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", s.LogLevel)
	}
	if s.Gemini.RPS <= 0 {
		return fmt.Errorf("gemini.rps must be > 0 (got %v)", s.Gemini.RPS)
	}
	if s.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be > 0 (got %d)", s.Retry.Attempts)
	}
	if s.StoreDir == "" {
		return errors.New("store_dir is required")
	}
	return nil
}

// RequireGemini reports a missing vision credential.
func (s *Settings) RequireGemini() error {
	if s.Gemini.APIKey == "" {
		return fmt.Errorf("gemini.api_key is required (set %s_GEMINI_API_KEY)", EnvPrefix)
	}
	return nil
}

// MarketEnabled reports whether comparables can be fetched.
func (s *Settings) MarketEnabled() bool { return s.Market.APIKey != "" }

// RedisEnabled reports whether lookups should be cached.
func (s *Settings) RedisEnabled() bool { return s.Redis.Addr != "" }

// MySQLEnabled reports whether reports go to MySQL instead of the file store.
func (s *Settings) MySQLEnabled() bool { return s.MySQL.DSN != "" }
