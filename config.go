package filesig

import (
	"time"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// XML catalog appended to the built-in catalog (empty for built-in only)
	CatalogFile  string `env:"FILESIG_CATALOG_FILE"`
	WatchCatalog bool   `env:"FILESIG_WATCH_CATALOG,default:false"`

	// Upper bound for buffering a non-seekable stream during ZIP inspection
	MaxContainerSize int64 `env:"FILESIG_MAX_CONTAINER_SIZE,default:104857600"` // 100MB default

	// Result cache for files and S3 objects
	CacheEnabled bool   `env:"FILESIG_CACHE_ENABLED,default:true"`
	CacheTTL     string `env:"FILESIG_CACHE_TTL,default:5m"`

	// Logging
	LogLevel  string `env:"FILESIG_LOG_LEVEL,default:info"`
	LogFormat string `env:"FILESIG_LOG_FORMAT,default:text"` // text or json

	// S3 source configuration
	S3Region          string `env:"FILESIG_S3_REGION,default:us-east-1"`
	S3Endpoint        string `env:"FILESIG_S3_ENDPOINT"`
	S3AccessKeyID     string `env:"FILESIG_S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"FILESIG_S3_SECRET_ACCESS_KEY"`
	S3ForcePathStyle  bool   `env:"FILESIG_S3_FORCE_PATH_STYLE,default:false"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// cacheTTL parses CacheTTL; an empty value means entries never expire
func (c *Config) cacheTTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(c.CacheTTL)
}
