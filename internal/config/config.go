package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/inwheel/accessibility-importer/internal/pkg/validator"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Importer ImporterConfig
	Events   EventsConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int `validate:"gte=0,lte=65535"`
	Env         string
	CORSOrigins string
}

type DatabaseConfig struct {
	// URL takes precedence over the discrete connection fields.
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type ImporterConfig struct {
	DataDir         string `validate:"required"`
	RegionsFile     string
	BatchSize       int `validate:"gt=0"`
	ParseWorkers    int `validate:"gt=0"`
	OsmiumBin       string
	SkipFilter      bool
	MetricsTextfile string
}

// Event sinks.
const (
	SinkNone  = "none"
	SinkRedis = "redis"
	SinkKafka = "kafka"
)

type EventsConfig struct {
	Sink   string `validate:"oneof=none redis kafka"`
	Stream string
}

type CacheConfig struct {
	// Enabled turns on the Redis place cache and its invalidation on import.
	Enabled       bool
	PlaceCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled   bool
	Interval  time.Duration `validate:"gt=0"`
	Regions   []string
	Overwrite bool
}

// Load reads .env and .env.local when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("API_CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(v.GetString("KAFKA_BROKERS")),
			Topic:   v.GetString("KAFKA_TOPIC"),
		},
		Importer: ImporterConfig{
			DataDir:         v.GetString("DATA_DIR"),
			RegionsFile:     v.GetString("REGIONS_FILE"),
			BatchSize:       v.GetInt("BATCH_SIZE"),
			ParseWorkers:    v.GetInt("PARSE_WORKERS"),
			OsmiumBin:       v.GetString("OSMIUM_BIN"),
			SkipFilter:      v.GetBool("SKIP_FILTER"),
			MetricsTextfile: v.GetString("METRICS_TEXTFILE"),
		},
		Events: EventsConfig{
			Sink:   strings.ToLower(v.GetString("EVENTS_SINK")),
			Stream: v.GetString("EVENTS_STREAM"),
		},
		Cache: CacheConfig{
			Enabled:       v.GetBool("CACHE_ENABLED"),
			PlaceCacheTTL: time.Duration(v.GetInt("PLACE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:   v.GetBool("WORKER_ENABLED"),
			Interval:  time.Duration(v.GetInt("WORKER_INTERVAL")) * time.Second,
			Regions:   splitList(v.GetString("WORKER_REGIONS")),
			Overwrite: v.GetBool("WORKER_OVERWRITE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "inwheel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 3600)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 600)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)

	v.SetDefault("KAFKA_TOPIC", "accessibility.imported")

	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("BATCH_SIZE", 2000)
	v.SetDefault("PARSE_WORKERS", runtime.NumCPU())
	v.SetDefault("OSMIUM_BIN", "osmium")

	v.SetDefault("EVENTS_SINK", SinkNone)
	v.SetDefault("EVENTS_STREAM", "stream:accessibility:imported")

	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("PLACE_CACHE_TTL", 300)

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("WORKER_INTERVAL", 86400)
}

// Validate checks field constraints and the combinations between groups.
func (c *Config) Validate() error {
	if err := validator.Validate(c.Server); err != nil {
		return err
	}
	if err := validator.Validate(c.Importer); err != nil {
		return err
	}
	if err := validator.Validate(c.Events); err != nil {
		return err
	}
	if c.Worker.Enabled {
		if err := validator.Validate(c.Worker); err != nil {
			return err
		}
	}
	if c.Events.Sink == SinkKafka && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("EVENTS_SINK=kafka requires KAFKA_BROKERS")
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN returns DATABASE_URL when set, otherwise a keyword/value DSN.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host,
		d.Port,
		d.User,
		d.Password,
		d.DBName,
		d.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
