package filesig

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/gobeaver/filesig/signature"
	"github.com/gobeaver/filesig/source"
)

// Option represents a Detector configuration option
type Option func(*Options)

// Options contains all settings a Detector is built from
type Options struct {
	// Catalog is scanned by the detector. Nil means the built-in catalog.
	Catalog *signature.Catalog

	// Logger receives detector and watcher logs. Nil discards them.
	Logger *slog.Logger

	// Cache stores results of file and S3 lookups. Nil disables caching.
	Cache Cache

	// CacheTTL is the lifetime of cached results; 0 means no expiration
	CacheTTL time.Duration

	// MaxContainerSize bounds buffering of non-seekable ZIP streams.
	// 0 or less disables the bound.
	MaxContainerSize int64

	// MeterProvider supplies the metric instruments. Nil uses the otel global.
	MeterProvider metric.MeterProvider

	// S3Client serves DetectS3. Nil means a client is created from S3Config
	// on first use.
	S3Client source.ObjectAPI

	// S3Config is used to create the S3 client when S3Client is nil
	S3Config source.S3Config
}

// WithCatalog sets the catalog to scan
func WithCatalog(c *signature.Catalog) Option {
	return func(o *Options) {
		o.Catalog = c
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithCache enables result caching with the given backend and TTL
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(o *Options) {
		o.Cache = cache
		o.CacheTTL = ttl
	}
}

// WithMaxContainerSize bounds buffering of non-seekable ZIP streams
func WithMaxContainerSize(size int64) Option {
	return func(o *Options) {
		o.MaxContainerSize = size
	}
}

// WithMeterProvider sets the otel meter provider used for metrics
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) {
		o.MeterProvider = mp
	}
}

// WithS3Client sets the client used by DetectS3
func WithS3Client(client source.ObjectAPI) Option {
	return func(o *Options) {
		o.S3Client = client
	}
}

// WithS3Config sets the settings used to create an S3 client on demand
func WithS3Config(cfg source.S3Config) Option {
	return func(o *Options) {
		o.S3Config = cfg
	}
}
