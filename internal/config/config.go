package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env           string          `yaml:"env" env:"ENV" env-required:"true"`
	StorageDriver string          `yaml:"storage_driver" env:"STORAGE_DRIVER"`
	HTTP          HTTPConfig      `yaml:"http"`
	JWT           JWTConfig       `yaml:"jwt"`
	Postgres      PostgresConfig  `yaml:"postgres"`
	SQLite        SQLiteConfig    `yaml:"sqlite"`
	Redis         RedisConfig     `yaml:"redis"`
	RateLimit     RateLimitConfig `yaml:"rate_limit"`
}

// applyDefaults fills values that depend on other fields. Local runs use
// SQLite unless a driver is set explicitly.
func (c *Config) applyDefaults() {
	if c.StorageDriver == "" {
		if c.Env == EnvLocal {
			c.StorageDriver = "sqlite"
		} else {
			c.StorageDriver = "postgres"
		}
	}
}

type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type JWTConfig struct {
	Issuer         string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"go-task-manager"`
	SigningKey     string        `yaml:"signing_key" env:"JWT_SIGNING_KEY" env-required:"true"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"JWT_ACCESS_TOKEN_TTL" env-default:"720h"`
}

type PostgresConfig struct {
	Host           string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `yaml:"username" env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database       string        `yaml:"database" env:"POSTGRES_DATABASE" env-default:"tasks"`
	SSLMode        string        `yaml:"ssl_mode" env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `yaml:"ping_timeout" env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"tasks.db"`
}

// RedisConfig leaves rate limiting disabled when Addr is empty.
type RedisConfig struct {
	Addr        string        `yaml:"addr" env:"REDIS_ADDR"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	PingTimeout time.Duration `yaml:"ping_timeout" env:"REDIS_PING_TIMEOUT" env-default:"5s"`
}

type RateLimitConfig struct {
	Limit     int           `yaml:"limit" env:"RATE_LIMIT_LIMIT" env-default:"100"`
	Window    time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"15m"`
	KeyPrefix string        `yaml:"key_prefix" env:"RATE_LIMIT_KEY_PREFIX" env-default:"ratelimit:"`
}
