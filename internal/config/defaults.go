package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultServerHost = "0.0.0.0"
	DefaultServerPort = 8080
	DefaultServerMode = "release"

	DefaultTitle    = "Rose Diagram"
	DefaultBinWidth = 10
	DefaultPalette  = "viridis"
	DefaultInches   = 10.0
	DefaultDPI      = 300

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsPath = "/metrics"

	DefaultRedisAddr   = "localhost:6379"
	DefaultRedisTTL    = 24 * time.Hour
	DefaultRedisPrefix = "georose:"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "rose-diagrams"

	DefaultKafkaBroker = "localhost:9092"
	DefaultKafkaTopic  = "diagram.generated"
)

// registerDefaults seeds v with every key.  Besides supplying defaults this
// makes viper aware of each key, so GEOROSE_* variables are picked up by
// Unmarshal even when no config file mentions the key.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.mode", DefaultServerMode)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_size", int64(10<<20))
	v.SetDefault("server.slow_request", 2*time.Second)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.rate_limit_rps", 10.0)
	v.SetDefault("server.rate_limit_burst", 20)

	v.SetDefault("diagram.default_title", DefaultTitle)
	v.SetDefault("diagram.default_bin_width", DefaultBinWidth)
	v.SetDefault("diagram.default_palette", DefaultPalette)
	v.SetDefault("diagram.width_inches", DefaultInches)
	v.SetDefault("diagram.height_inches", DefaultInches)
	v.SetDefault("diagram.dpi", DefaultDPI)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output", []string{"stderr"})

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", DefaultMetricsPath)
	v.SetDefault("metrics.namespace", "georose")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", DefaultRedisAddr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.ttl", DefaultRedisTTL)
	v.SetDefault("redis.key_prefix", DefaultRedisPrefix)

	v.SetDefault("minio.enabled", false)
	v.SetDefault("minio.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", DefaultMinIOBucket)
	v.SetDefault("minio.region", "")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.presign_expiry", time.Hour)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{DefaultKafkaBroker})
	v.SetDefault("kafka.topic", DefaultKafkaTopic)
	v.SetDefault("kafka.required_acks", 1)
	v.SetDefault("kafka.batch_timeout", 10*time.Millisecond)
	v.SetDefault("kafka.write_timeout", 10*time.Second)
}

// ApplyDefaults fills zero-value fields in cfg.  Load already seeds viper
// with defaults; this covers configs built as struct literals (tests, the
// CLI when no file is given) so that Validate never sees a blank field.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxBodySize == 0 {
		cfg.Server.MaxBodySize = 10 << 20
	}

	if cfg.Diagram.DefaultTitle == "" {
		cfg.Diagram.DefaultTitle = DefaultTitle
	}
	if cfg.Diagram.DefaultBinWidth == 0 {
		cfg.Diagram.DefaultBinWidth = DefaultBinWidth
	}
	if cfg.Diagram.DefaultPalette == "" {
		cfg.Diagram.DefaultPalette = DefaultPalette
	}
	if cfg.Diagram.WidthInches == 0 {
		cfg.Diagram.WidthInches = DefaultInches
	}
	if cfg.Diagram.HeightInches == 0 {
		cfg.Diagram.HeightInches = DefaultInches
	}
	if cfg.Diagram.DPI == 0 {
		cfg.Diagram.DPI = DefaultDPI
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// redis.db 0 is a valid explicit value and also the default.
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = DefaultRedisTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultRedisPrefix
	}

	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}
	if cfg.MinIO.PresignExpiry == 0 {
		cfg.MinIO.PresignExpiry = time.Hour
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = DefaultKafkaTopic
	}
}

// Default returns a fully defaulted Config.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

//Personal.AI order the ending
