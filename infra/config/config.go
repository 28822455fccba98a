package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/drakos74/free-glyph/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides e.g. FREE_GLYPH_WORKERS.
const EnvPrefix = "FREE_GLYPH"

// Config is the deployment configuration of a run.
// It is built once at startup and passed explicitly to the components that need it.
type Config struct {
	Labels        []string      `mapstructure:"labels"`
	Extension     string        `mapstructure:"extension"`
	Workers       int           `mapstructure:"workers"`
	DecodeTimeout time.Duration `mapstructure:"decode_timeout"`
	Progress      bool          `mapstructure:"progress"`
	StrictEmpty   bool          `mapstructure:"strict_empty"`
	Seed          int64         `mapstructure:"seed"`
	Log           Log           `mapstructure:"log"`
	Storage       Storage       `mapstructure:"storage"`
	Metrics       Metrics       `mapstructure:"metrics"`
}

// Log defines the logging options.
type Log struct {
	Level string `mapstructure:"level"`
}

// Storage defines where run reports are persisted.
type Storage struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// Metrics defines the prometheus textfile output.
// An empty file disables the export.
type Metrics struct {
	File string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("labels", model.DefaultLabels().Strings())
	v.SetDefault("extension", ".jpg")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("decode_timeout", 10*time.Second)
	v.SetDefault("progress", false)
	v.SetDefault("strict_empty", false)
	v.SetDefault("seed", 44111342)
	v.SetDefault("log.level", "info")
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.dir", "file-storage")
	v.SetDefault("metrics.file", "")
}

// Default returns the configuration without any file or environment overrides.
func Default() Config {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		panic(fmt.Sprintf("could not load default config: %s", err.Error()))
	}
	return cfg
}

// Load reads the config from the given file, if any, applies environment overrides and validates the result.
func Load(v *viper.Viper, file string) (Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("could not read config '%s': %w", file, err)
		}
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("loaded config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not unmarshal config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive: %d", c.Workers))
	}
	if c.DecodeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("decode_timeout must be positive: %v", c.DecodeTimeout))
	}
	if c.Extension == "" {
		errs = append(errs, fmt.Errorf("extension is required"))
	}
	if _, err := c.LabelSet(); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level '%s': %w", c.Log.Level, err))
	}
	return errors.Join(errs...)
}

// LabelSet returns the configured labels.
func (c Config) LabelSet() (model.Labels, error) {
	labels, err := model.NewLabels(c.Labels...)
	if err != nil {
		return model.Labels{}, fmt.Errorf("invalid labels: %w", err)
	}
	return labels, nil
}

// LogLevel returns the zerolog level, falling back to info.
func (c Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
