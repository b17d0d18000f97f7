package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	AppEnv          string
	HTTPPort        string
	GRPCPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (s ServerConfig) IsDevelopment() bool {
	return s.AppEnv == "development" || s.AppEnv == "dev"
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
	ConnectTimeout  int
}

// KafkaConfig with no brokers disables event publishing.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	BatchTimeout time.Duration
}

var defaults = map[string]any{
	"APP_ENV":                     "dev",
	"HTTP_PORT":                   "8080",
	"GRPC_PORT":                   "8082",
	"HTTP_READ_TIMEOUT":           "10s",
	"HTTP_WRITE_TIMEOUT":          "30s",
	"SHUTDOWN_TIMEOUT":            "15s",
	"LOGGER_LEVEL":                "debug",
	"LOGGER_ENCODING":             "console",
	"LOGGER_DISABLE_CALLER":       false,
	"LOGGER_DISABLE_STACKTRACE":   true,
	"POSTGRES_HOST":               "localhost",
	"POSTGRES_PORT":               "5432",
	"POSTGRES_USER":               "catalog",
	"POSTGRES_PASSWORD":           "catalog",
	"POSTGRES_DB":                 "catalog",
	"POSTGRES_SSLMODE":            "disable",
	"POSTGRES_MAX_OPEN_CONNS":     10,
	"POSTGRES_MAX_IDLE_CONNS":     5,
	"POSTGRES_CONN_MAX_LIFETIME":  300,
	"POSTGRES_CONN_MAX_IDLE_TIME": 60,
	"POSTGRES_CONNECT_TIMEOUT":    5,
	"KAFKA_BROKERS":               "",
	"KAFKA_TOPIC":                 "catalog.events",
	"KAFKA_WRITE_TIMEOUT":         "5s",
	"KAFKA_BATCH_TIMEOUT":         "10ms",
}

// LoadEnv reads an optional .env file and then the process environment.
// Real environment variables win over .env entries.
func LoadEnv() *Config {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) *Config {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			AppEnv:          v.GetString("APP_ENV"),
			HTTPPort:        v.GetString("HTTP_PORT"),
			GRPCPort:        v.GetString("GRPC_PORT"),
			ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		Logger: LoggerConfig{
			Level:             v.GetString("LOGGER_LEVEL"),
			Encoding:          v.GetString("LOGGER_ENCODING"),
			DisableCaller:     v.GetBool("LOGGER_DISABLE_CALLER"),
			DisableStacktrace: v.GetBool("LOGGER_DISABLE_STACKTRACE"),
		},
		Postgres: PostgresConfig{
			Host:            v.GetString("POSTGRES_HOST"),
			Port:            v.GetString("POSTGRES_PORT"),
			User:            v.GetString("POSTGRES_USER"),
			Password:        v.GetString("POSTGRES_PASSWORD"),
			DBName:          v.GetString("POSTGRES_DB"),
			SSLMode:         v.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns:    v.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("POSTGRES_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetInt("POSTGRES_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetInt("POSTGRES_CONN_MAX_IDLE_TIME"),
			ConnectTimeout:  v.GetInt("POSTGRES_CONNECT_TIMEOUT"),
		},
		Kafka: KafkaConfig{
			// viper does not split env values, so the list is parsed here.
			Brokers:      splitList(v.GetString("KAFKA_BROKERS")),
			Topic:        v.GetString("KAFKA_TOPIC"),
			WriteTimeout: v.GetDuration("KAFKA_WRITE_TIMEOUT"),
			BatchTimeout: v.GetDuration("KAFKA_BATCH_TIMEOUT"),
		},
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
