// Package config loads chargesnap configuration from file, environment,
// and defaults, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Well-known Overpass API endpoints selectable by preset name.
const (
	EndpointSwitzerland = "https://overpass.osm.ch/api/interpreter"
	EndpointWorld       = "https://overpass-api.de/api/interpreter"
)

// Config holds the full application configuration.
type Config struct {
	Overpass OverpassConfig `yaml:"overpass" mapstructure:"overpass"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// OverpassConfig configures the remote query.
type OverpassConfig struct {
	// Endpoint is "switzerland", "world", or an explicit http(s) URL.
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// OutputConfig configures the output artifacts.
type OutputConfig struct {
	KeepIntermediate bool   `yaml:"keep_intermediate" mapstructure:"keep_intermediate"`
	RawPath          string `yaml:"raw_path" mapstructure:"raw_path"`
	CompressedPath   string `yaml:"compressed_path" mapstructure:"compressed_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CHARGESNAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("overpass.endpoint", "switzerland")
	v.SetDefault("overpass.timeout_secs", 900)
	v.SetDefault("output.keep_intermediate", false)
	v.SetDefault("output.raw_path", "overpass-result.json")
	v.SetDefault("output.compressed_path", "charging-stations-osm.json.gz")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ResolveEndpoint maps an endpoint preset or explicit URL to the
// Overpass interpreter URL to query.
func ResolveEndpoint(s string) (string, error) {
	switch {
	case s == "switzerland":
		return EndpointSwitzerland, nil
	case s == "world":
		return EndpointWorld, nil
	case strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"):
		return s, nil
	default:
		return "", eris.Errorf("config: invalid endpoint %q: expected 'switzerland', 'world', or an http(s) URL", s)
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
