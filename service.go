package filesig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gobeaver/beaver-kit/config"

	"github.com/gobeaver/filesig/source"
)

// Global instance
var (
	defaultDetector *Detector
	defaultOnce     sync.Once
	defaultErr      error
)

// Builder provides a way to create Detector instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Detector instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Detector instance using the builder's prefix
func (b *Builder) New() (*Detector, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global detector instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultDetector, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a detector from config: logger, cache, S3 settings, and the
// optional catalog file with its watcher
func New(cfg *Config) (*Detector, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := []Option{
		WithLogger(NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)),
		WithMaxContainerSize(cfg.MaxContainerSize),
		WithS3Config(source.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			ForcePathStyle:  cfg.S3ForcePathStyle,
		}),
	}
	if cfg.CacheEnabled {
		ttl, _ := cfg.cacheTTL() // validated above
		opts = append(opts, WithCache(NewMemoryCache(), ttl))
	}

	d := NewDetector(opts...)

	if cfg.CatalogFile != "" {
		if err := d.LoadCatalogFile(cfg.CatalogFile); err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		if cfg.WatchCatalog {
			if err := d.WatchCatalog(context.Background(), cfg.CatalogFile); err != nil {
				return nil, fmt.Errorf("failed to watch catalog: %w", err)
			}
		}
	}

	return d, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}
	if cfg.WatchCatalog && cfg.CatalogFile == "" {
		return fmt.Errorf("watch requested: %w", ErrNoCatalog)
	}
	if cfg.MaxContainerSize < 0 {
		return fmt.Errorf("max container size must not be negative: %d", cfg.MaxContainerSize)
	}
	if ttl, err := cfg.cacheTTL(); err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", cfg.CacheTTL, err)
	} else if ttl < 0 {
		return fmt.Errorf("cache TTL must not be negative: %s", cfg.CacheTTL)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format: %s", cfg.LogFormat)
	}

	return nil
}

// Default returns the global instance, initializing if needed with error handling
func Default() (*Detector, error) {
	if defaultDetector == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	return defaultDetector, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv() (*Detector, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// InitFromEnv initializes the global instance from environment variables (convenience method)
func InitFromEnv() error {
	return Init()
}

// Reset closes and clears the global instance (for testing)
func Reset() {
	if defaultDetector != nil {
		_ = defaultDetector.Close()
	}
	defaultDetector = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
