package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/apexhome/products-manager/internal/allocator"
	httpapi "github.com/apexhome/products-manager/internal/api/http"
	"github.com/apexhome/products-manager/internal/auth/jwt"
	"github.com/apexhome/products-manager/internal/bucket"
	"github.com/apexhome/products-manager/internal/cache"
	"github.com/apexhome/products-manager/internal/lock"
	"github.com/apexhome/products-manager/internal/mail"
	"github.com/apexhome/products-manager/internal/metrics"
	"github.com/apexhome/products-manager/internal/ratelimit"
	"github.com/apexhome/products-manager/internal/rediscli"
	"github.com/apexhome/products-manager/internal/store"
	"github.com/apexhome/products-manager/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// RegistryConfig configures the supplier/model code registries.
type RegistryConfig struct {
	Cache cache.Config `mapstructure:"cache"`
	Lock  lock.Config  `mapstructure:"lock"`
}

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"mysql"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Auth      jwt.Config       `mapstructure:"auth"`
	Sequence  allocator.Config `mapstructure:"sequence"`
	Redis     rediscli.Config  `mapstructure:"redis"`
	Registry  RegistryConfig   `mapstructure:"registry"`
	Bucket    bucket.Config    `mapstructure:"bucket"`
	Mailer    mail.Config      `mapstructure:"mailer"`
	RateLimit ratelimit.Config `mapstructure:"ratelimit"`
	Metrics   metrics.Config   `mapstructure:"metrics"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// A .env file in the working directory is loaded first when present.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, AUTH_JWT_SECRET
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("toml")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/products-manager")
		v.AddConfigPath("/etc/products-manager")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.DB.DSN == "" {
		config.DB.DSN = dsnFromEnv()
	}
	return &config, nil
}

// dsnFromEnv builds a DSN from MYSQL_HOST and friends, or returns "".
func dsnFromEnv() string {
	host := os.Getenv("MYSQL_HOST")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	if host == "" || user == "" || password == "" || database == "" {
		return ""
	}
	port := os.Getenv("MYSQL_PORT")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
		user, password, host, port, database)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8081")
	v.SetDefault("sequence.backend", string(allocator.BackendMySQL))
	v.SetDefault("sequence.alert_ratio", 0.9)
	v.SetDefault("sequence.redis_key_prefix", "seq")
	v.SetDefault("metrics.prefix", "products_manager")
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	bind := func(key, env string) {
		_ = v.BindEnv(key, env)
	}

	// MySQL
	bind("mysql.dsn", "MYSQL_DSN")
	bind("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	bind("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	bind("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	bind("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")
	bind("mysql.tx_retries", "MYSQL_TX_RETRIES")

	// Logger
	bind("logger.level", "LOG_LEVEL")
	bind("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	bind("http.port", "HTTP_PORT")
	bind("http.address", "HTTP_ADDRESS")
	bind("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	bind("http.trust_proxy", "HTTP_TRUST_PROXY")

	// Auth
	bind("auth.jwt_secret", "AUTH_JWT_SECRET")
	bind("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Sequence
	bind("sequence.backend", "SEQUENCE_BACKEND")
	bind("sequence.alert_ratio", "SEQUENCE_ALERT_RATIO")
	bind("sequence.redis_key_prefix", "SEQUENCE_REDIS_KEY_PREFIX")
	bind("sequence.allow_volatile", "SEQUENCE_ALLOW_VOLATILE")

	// Redis
	bind("redis.addr", "REDIS_ADDR")
	bind("redis.password", "REDIS_PASSWORD")
	bind("redis.db", "REDIS_DB")

	// Registry
	bind("registry.cache.ttl", "REGISTRY_CACHE_TTL")
	bind("registry.lock.ttl", "REGISTRY_LOCK_TTL")

	// Bucket
	bind("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	bind("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	bind("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	bind("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	bind("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	bind("bucket.base_folder", "BUCKET_BASE_FOLDER")

	// Mailer
	bind("mailer.sendgrid_api_key", "MAILER_SENDGRID_API_KEY")
	bind("mailer.from_email", "MAILER_FROM_EMAIL")
	bind("mailer.from_email_name", "MAILER_FROM_EMAIL_NAME")
	bind("mailer.alert_recipients", "MAILER_ALERT_RECIPIENTS")
	bind("mailer.worker_interval", "MAILER_WORKER_INTERVAL")

	// Rate limits
	bind("ratelimit.validate_per_minute", "RATELIMIT_VALIDATE_PER_MINUTE")
	bind("ratelimit.preview_per_minute", "RATELIMIT_PREVIEW_PER_MINUTE")
}
