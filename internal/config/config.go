package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"burnoutlens/internal/comparison"
	"burnoutlens/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override, e.g. BURNOUT_DATA_FILE.
const EnvPrefix = "BURNOUT"

// Config represents the complete application configuration
type Config struct {
	Data       DataConfig       `mapstructure:"data" yaml:"data"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Session    SessionConfig    `mapstructure:"session" yaml:"session"`
	Comparison ComparisonConfig `mapstructure:"comparison" yaml:"comparison"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Chart      ChartConfig      `mapstructure:"chart" yaml:"chart"`
	Profiling  ProfilingConfig  `mapstructure:"profiling" yaml:"profiling"`
}

// DataConfig locates the survey export
type DataConfig struct {
	File      string `mapstructure:"file" yaml:"file"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `mapstructure:"port" yaml:"port"`
	GinMode string `mapstructure:"gin_mode" yaml:"gin_mode"`
}

// SessionConfig controls per-browser filter selections
type SessionConfig struct {
	TTL string `mapstructure:"ttl" yaml:"ttl"`
}

// ComparisonConfig holds the rank-sum test settings
type ComparisonConfig struct {
	Alpha  float64 `mapstructure:"alpha" yaml:"alpha"`
	Method string  `mapstructure:"method" yaml:"method"`
}

// LogConfig selects the zerolog level and console output
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// ChartConfig sizes the distribution PNG
type ChartConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string `mapstructure:"port" yaml:"port"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
}

// SessionTTL parses Session.TTL. Validate guarantees it is a positive duration.
func (c *Config) SessionTTL() time.Duration {
	d, err := time.ParseDuration(c.Session.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// DelimiterRune returns the first rune of Data.Delimiter, defaulting to ';'.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Data.Delimiter {
		return r
	}
	return ';'
}

// ComparisonMethod returns the validated comparison method.
func (c *Config) ComparisonMethod() comparison.Method {
	m, err := comparison.ParseMethod(c.Comparison.Method)
	if err != nil {
		return comparison.MethodAuto
	}
	return m
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.file", "cleaned_data.csv")
	v.SetDefault("data.delimiter", ";")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("comparison.alpha", comparison.DefaultAlpha)
	v.SetDefault("comparison.method", string(comparison.MethodAuto))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("chart.width", 1000)
	v.SetDefault("chart.height", 500)
	v.SetDefault("profiling.port", "6060")
	v.SetDefault("profiling.enabled", false)
}

// Load reads configuration from a .env file, the environment, an optional YAML
// file (cfgFile, else BURNOUT_CONFIG, else ./burnoutlens.yaml) and defaults, then
// validates it.
// Precedence: env > config file > defaults. PORT and GIN_MODE are honoured as
// aliases of the prefixed server variables.
func Load(cfgFile string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()
	if cfgFile == "" {
		cfgFile = os.Getenv(EnvPrefix + "_CONFIG")
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.gin_mode", EnvPrefix+"_SERVER_GIN_MODE", "GIN_MODE")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read config file %s", cfgFile))
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("burnoutlens")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to unmarshal configuration"))
	}

	if err := Validate(&c); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &c, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return &c
}

// Validate rejects values the application cannot run with
func Validate(c *Config) error {
	if c.Data.File == "" {
		return errors.ConfigInvalid("data.file is required")
	}
	if len([]rune(c.Data.Delimiter)) > 1 {
		return errors.ConfigInvalid(fmt.Sprintf("data.delimiter must be a single character, got %q", c.Data.Delimiter))
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("server.port must be a TCP port, got %q", c.Server.Port))
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("server.gin_mode must be debug, release or test, got %q", c.Server.GinMode))
	}
	if d, err := time.ParseDuration(c.Session.TTL); err != nil || d <= 0 {
		return errors.ConfigInvalid(fmt.Sprintf("session.ttl must be a positive duration, got %q", c.Session.TTL))
	}
	if c.Comparison.Alpha <= 0 || c.Comparison.Alpha >= 1 {
		return errors.ConfigInvalid(fmt.Sprintf("comparison.alpha must be in (0, 1), got %v", c.Comparison.Alpha))
	}
	if _, err := comparison.ParseMethod(c.Comparison.Method); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return errors.ConfigInvalid("chart dimensions must not be negative")
	}
	return nil
}

// Save writes the configuration as YAML to path, creating the parent directory.
func Save(c *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir config dir")
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal yaml")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
