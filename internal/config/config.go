package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Store      StoreConfig      `mapstructure:"store"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Validation ValidationConfig `mapstructure:"validation"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Redis      RedisConfig      `mapstructure:"redis"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// Port, when set (PORT), replaces the port part of Address.
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// StoreConfig selects the repository backend: "memory" or "mongo".
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// ValidationConfig controls what happens to input that does not coerce.
// Lenient mode stores markers; strict mode rejects the request.
type ValidationConfig struct {
	Strict bool `mapstructure:"strict"`
}

// JWTConfig defines JWT specific configuration. An empty secret disables
// token issuing and authentication.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// StorageConfig configures the object store used for log exports. An empty
// bucket disables exports.
type StorageConfig struct {
	Provider        string        `mapstructure:"provider"` // "s3" or "minio"
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	RPS      float64       `mapstructure:"rps"`
	Burst    int           `mapstructure:"burst"`
	UseRedis bool          `mapstructure:"use_redis"`
	Window   time.Duration `mapstructure:"window"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ListenAddress returns the address the HTTP server binds to.
func (c ServerConfig) ListenAddress() string {
	if c.Port == "" {
		return c.Address
	}
	host := c.Address
	if i := strings.LastIndex(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host + ":" + c.Port
}

// LoadConfig reads configuration from file or environment variables.
// A .env file in path is loaded into the environment first, without
// overriding variables that are already set.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, rate_limit.use_redis -> RATE_LIMIT_USE_REDIS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	if err = v.BindEnv("server.port", "PORT"); err != nil {
		return
	}

	// Every key needs a default so Unmarshal sees values coming from the environment.
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.port", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "exercise_tracker")
	v.SetDefault("validation.strict", false)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiration", "1h")
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.access_key_id", "")
	v.SetDefault("storage.secret_access_key", "")
	v.SetDefault("storage.bucket_name", "")
	v.SetDefault("storage.use_ssl", true)
	v.SetDefault("storage.url_expiry", "15m")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 10)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.use_redis", false)
	v.SetDefault("rate_limit.window", "1s")
	v.SetDefault("metrics.enabled", true)

	err = v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// The file is optional; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
