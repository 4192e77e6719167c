// Package config loads metricline settings from a YAML file and METRICLINE_*
// environment variables and maps them to serializer options.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/enrich"
	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/format"
	"github.com/arloliu/metricline/serializer"
)

// EnvPrefix is the prefix of environment variables overriding file settings, e.g.
// METRICLINE_PREFIX or METRICLINE_LOG_LEVEL.
const EnvPrefix = "METRICLINE"

// Dimension is a configured key/value pair.
type Dimension struct {
	Key   string `mapstructure:"key"`
	Value string `mapstructure:"value"`
}

// Config holds the serializer, enrichment, payload and logging settings.
type Config struct {
	Prefix              string      `mapstructure:"prefix"`
	DefaultDimensions   []Dimension `mapstructure:"default_dimensions"`
	StaticDimensions    []Dimension `mapstructure:"static_dimensions"`
	MetricsSource       string      `mapstructure:"metrics_source"`
	EnrichMetadata      bool        `mapstructure:"enrich_metadata"`
	HostMetadata        bool        `mapstructure:"host_metadata"`
	EnrichmentDirectory string      `mapstructure:"enrichment_directory"`
	KeyCacheSize        int         `mapstructure:"key_cache_size"`
	Compression         string      `mapstructure:"compression"`
	LogLevel            string      `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "")
	v.SetDefault("default_dimensions", []Dimension{})
	v.SetDefault("static_dimensions", []Dimension{})
	v.SetDefault("metrics_source", "")
	v.SetDefault("enrich_metadata", true)
	v.SetDefault("host_metadata", false)
	v.SetDefault("enrichment_directory", "")
	v.SetDefault("key_cache_size", serializer.DefaultKeyCacheSize)
	v.SetDefault("compression", "none")
	v.SetDefault("log_level", "info")
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		// defaults alone always decode
		panic(err)
	}

	return cfg
}

// Load reads the YAML file at path, applies METRICLINE_* environment overrides and
// validates the result. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the enumerated and numeric settings.
func (c *Config) Validate() error {
	_, err := c.CompressionType()
	_, lerr := c.Level()
	err = multierr.Append(err, lerr)
	if c.KeyCacheSize < 0 {
		err = multierr.Append(err, fmt.Errorf("key_cache_size cannot be negative: %d", c.KeyCacheSize))
	}

	return err
}

// CompressionType returns the parsed payload compression.
func (c *Config) CompressionType() (format.CompressionType, error) {
	ct, ok := format.ParseCompressionType(c.Compression)
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, c.Compression)
	}

	return ct, nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log_level: %w", err)
	}

	return lvl, nil
}

// Enricher builds the metadata enricher: the OneAgent enricher, followed by the host
// metadata enricher when HostMetadata is set. It returns nil when enrichment is off.
func (c *Config) Enricher(logger *zap.Logger) enrich.Enricher {
	if !c.EnrichMetadata {
		return nil
	}

	oneAgent := enrich.NewOneAgentEnricher(logger, nil)
	if !c.HostMetadata {
		return oneAgent
	}

	return enrich.Chain(oneAgent, enrich.NewHostMetadataEnricher(logger, nil, c.EnrichmentDirectory))
}

// SerializerOptions maps the configuration to serializer options.
func (c *Config) SerializerOptions(logger *zap.Logger) []serializer.Option {
	opts := []serializer.Option{
		serializer.WithPrefix(c.Prefix),
		serializer.WithDefaultDimensions(toDimensions(c.DefaultDimensions)...),
		serializer.WithStaticDimensions(toDimensions(c.StaticDimensions)...),
		serializer.WithMetricsSource(c.MetricsSource),
		serializer.WithMetadataEnrichment(c.EnrichMetadata),
		serializer.WithKeyCacheSize(c.KeyCacheSize),
		serializer.WithLogger(logger),
	}
	if e := c.Enricher(logger); e != nil {
		opts = append(opts, serializer.WithEnricher(e))
	}

	return opts
}

func toDimensions(in []Dimension) []dimensions.Dimension {
	if len(in) == 0 {
		return nil
	}

	out := make([]dimensions.Dimension, len(in))
	for i, d := range in {
		out[i] = dimensions.NewDimension(d.Key, d.Value)
	}

	return out
}
