package serializer

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/arloliu/metricline/dimensions"
	"github.com/arloliu/metricline/enrich"
	"github.com/arloliu/metricline/internal/options"
)

// DefaultKeyCacheSize is the default number of normalized metric keys kept per serializer.
const DefaultKeyCacheSize = 1024

type config struct {
	prefix         string
	defaultDims    []dimensions.Dimension
	staticDims     []dimensions.Dimension
	metricsSource  string
	enrichMetadata bool
	enricher       enrich.Enricher
	logger         *zap.Logger
	registerer     prometheus.Registerer
	keyCacheSize   int
}

func defaultConfig() *config {
	return &config{
		enrichMetadata: true,
		logger:         zap.NewNop(),
		keyCacheSize:   DefaultKeyCacheSize,
	}
}

// Option configures a Serializer.
type Option = options.Option[*config]

// WithPrefix sets the prefix joined with "." in front of every metric name.
func WithPrefix(prefix string) Option {
	return options.NoError(func(c *config) {
		c.prefix = prefix
	})
}

// WithDefaultDimensions sets the dimensions added to every line with the lowest
// precedence. Metric dimensions override them.
func WithDefaultDimensions(dims ...dimensions.Dimension) Option {
	return options.NoError(func(c *config) {
		c.defaultDims = append(c.defaultDims, dims...)
	})
}

// WithStaticDimensions sets dimensions added to every line with the highest
// precedence, after enrichment dimensions and before the metrics source.
func WithStaticDimensions(dims ...dimensions.Dimension) Option {
	return options.NoError(func(c *config) {
		c.staticDims = append(c.staticDims, dims...)
	})
}

// WithMetricsSource adds the dt.metrics.source dimension to every line. An empty
// source adds nothing.
func WithMetricsSource(source string) Option {
	return options.NoError(func(c *config) {
		c.metricsSource = source
	})
}

// WithMetadataEnrichment turns metadata enrichment on or off. It is on by default.
func WithMetadataEnrichment(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.enrichMetadata = enabled
	})
}

// WithEnricher replaces the default OneAgent enricher. It has no effect when metadata
// enrichment is disabled.
func WithEnricher(e enrich.Enricher) Option {
	return options.NoError(func(c *config) {
		c.enricher = e
	})
}

// WithLogger sets the logger. A nil logger keeps the default no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithRegisterer exports the serializer instrumentation to reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return options.NoError(func(c *config) {
		c.registerer = reg
	})
}

// WithKeyCacheSize sets how many normalized metric keys are cached. Zero or a negative
// size disables the cache.
func WithKeyCacheSize(size int) Option {
	return options.NoError(func(c *config) {
		c.keyCacheSize = size
	})
}
