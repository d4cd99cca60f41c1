package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Minio     MinioConfig
	Translate TranslateConfig
	Catalog   CatalogConfig
}

type ServerConfig struct {
	AppEnv string
	// QueryTimeout bounds defensive lookups (duplicate/slug checks); the
	// ordering engine itself runs unbounded.
	QueryTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type TranslateConfig struct {
	Endpoint string
	Timeout  time.Duration
}

type CatalogConfig struct {
	CacheTTL time.Duration
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:       getEnv("APP_ENV", "dev"),
			QueryTimeout: time.Duration(getEnvInt("QUERY_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "tavolo"),
			Password:        getEnv("POSTGRES_PASSWORD", "tavolo"),
			DBName:          getEnv("POSTGRES_DB", "tavolo_catalog"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "tavolo"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "tavolo-secret"),
			Bucket:    getEnv("MINIO_BUCKET", "menu-images"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			PublicURL: getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
		},
		Translate: TranslateConfig{
			Endpoint: getEnv("TRANSLATE_ENDPOINT", ""),
			Timeout:  time.Duration(getEnvInt("TRANSLATE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Catalog: CatalogConfig{
			CacheTTL: time.Duration(getEnvInt("CATALOG_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
