package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/errs"
	"github.com/arloliu/metricline/format"
	"github.com/arloliu/metricline/metric"
	"github.com/arloliu/metricline/serializer"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metricline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Empty(t, cfg.Prefix)
	require.True(t, cfg.EnrichMetadata)
	require.False(t, cfg.HostMetadata)
	require.Equal(t, serializer.DefaultKeyCacheSize, cfg.KeyCacheSize)

	ct, err := cfg.CompressionType()
	require.NoError(t, err)
	require.Equal(t, format.CompressionNone, ct)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
prefix: svc
metrics_source: opentelemetry
enrich_metadata: false
key_cache_size: 16
compression: gzip
log_level: debug
default_dimensions:
  - key: env
    value: prod
  - key: region
    value: eu
static_dimensions:
  - key: team
    value: core
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "svc", cfg.Prefix)
	require.Equal(t, "opentelemetry", cfg.MetricsSource)
	require.False(t, cfg.EnrichMetadata)
	require.Equal(t, 16, cfg.KeyCacheSize)
	require.Equal(t, []Dimension{{Key: "env", Value: "prod"}, {Key: "region", Value: "eu"}}, cfg.DefaultDimensions)
	require.Equal(t, []Dimension{{Key: "team", Value: "core"}}, cfg.StaticDimensions)

	ct, err := cfg.CompressionType()
	require.NoError(t, err)
	require.Equal(t, format.CompressionGzip, ct)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "prefix: file\ncompression: gzip\n")

	t.Setenv("METRICLINE_PREFIX", "env")
	t.Setenv("METRICLINE_COMPRESSION", "zstd")
	t.Setenv("METRICLINE_HOST_METADATA", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env", cfg.Prefix)
	require.Equal(t, "zstd", cfg.Compression)
	require.True(t, cfg.HostMetadata)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "read config failed")
	})

	t.Run("invalid compression", func(t *testing.T) {
		_, err := Load(writeConfig(t, "compression: brotli\n"))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := Load(writeConfig(t, "log_level: loud\n"))
		require.ErrorContains(t, err, "invalid log_level")
	})

	t.Run("negative cache size", func(t *testing.T) {
		_, err := Load(writeConfig(t, "key_cache_size: -1\n"))
		require.ErrorContains(t, err, "key_cache_size")
	})
}

func TestConfig_Enricher(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg.Enricher(zap.NewNop()))

	cfg.EnrichMetadata = false
	require.Nil(t, cfg.Enricher(zap.NewNop()))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dt_host_metadata.properties"),
		[]byte("host.name=web01\n"), 0o600))

	cfg.EnrichMetadata = true
	cfg.HostMetadata = true
	cfg.EnrichmentDirectory = dir

	got := cfg.Enricher(zap.NewNop()).Enrich(nil)
	require.Contains(t, got, dimensions.NewDimension("host.name", "web01"))
}

func TestConfig_SerializerOptions(t *testing.T) {
	cfg := Default()
	cfg.Prefix = "svc"
	cfg.MetricsSource = "cli"
	cfg.EnrichMetadata = false
	cfg.DefaultDimensions = []Dimension{{Key: "env", Value: "prod"}}
	cfg.StaticDimensions = []Dimension{{Key: "team", Value: "core"}}

	s, err := serializer.New(cfg.SerializerOptions(zap.NewNop())...)
	require.NoError(t, err)

	m, err := metric.New("requests",
		metric.WithIntCounterValueDelta(1),
		metric.WithDimensions(dimensions.NewDimension("env", "dev")),
	)
	require.NoError(t, err)

	line, err := s.Serialize(m)
	require.NoError(t, err)
	require.Equal(t, "svc.requests,env=dev,team=core,dt.metrics.source=cli count,delta=1", line)
}
