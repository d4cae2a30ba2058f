package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	Session SessionConfig
	Game    GameConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Mode         string // debug, release, test
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type StoreConfig struct {
	Backend  string // file, postgres
	File     FileStoreConfig
	Postgres DatabaseConfig
}

type FileStoreConfig struct {
	Dir string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type SessionConfig struct {
	TTL time.Duration
}

type GameConfig struct {
	MinPlayers     int
	RoomCodeLength int
	TypingExpiry   time.Duration
	PollInterval   time.Duration
	TypingInterval time.Duration
	MaxMessageLen  int
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetEnvPrefix("DAREROOM")
	viper.AutomaticEnv()

	setDefaults()

	// Config file is optional; env vars and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	bindEnvVariables()

	cfg := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("server.host"),
			Port:         viper.GetInt("server.port"),
			Mode:         viper.GetString("server.mode"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
		},
		Store: StoreConfig{
			Backend: viper.GetString("store.backend"),
			File: FileStoreConfig{
				Dir: viper.GetString("store.file.dir"),
			},
			Postgres: DatabaseConfig{
				Host:            viper.GetString("store.postgres.host"),
				Port:            viper.GetInt("store.postgres.port"),
				User:            viper.GetString("store.postgres.user"),
				Password:        viper.GetString("store.postgres.password"),
				DBName:          viper.GetString("store.postgres.dbname"),
				SSLMode:         viper.GetString("store.postgres.sslmode"),
				MaxOpenConns:    viper.GetInt("store.postgres.max_open_conns"),
				MaxIdleConns:    viper.GetInt("store.postgres.max_idle_conns"),
				ConnMaxLifetime: viper.GetDuration("store.postgres.conn_max_lifetime"),
			},
		},
		Redis: RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		Session: SessionConfig{
			TTL: viper.GetDuration("session.ttl"),
		},
		Game: GameConfig{
			MinPlayers:     viper.GetInt("game.min_players"),
			RoomCodeLength: viper.GetInt("game.room_code_length"),
			TypingExpiry:   viper.GetDuration("game.typing_expiry"),
			PollInterval:   viper.GetDuration("game.poll_interval"),
			TypingInterval: viper.GetDuration("game.typing_interval"),
			MaxMessageLen:  viper.GetInt("game.max_message_len"),
		},
		Log: LogConfig{
			Level:      viper.GetString("log.level"),
			Format:     viper.GetString("log.format"),
			OutputPath: viper.GetString("log.output_path"),
		},
	}

	return cfg, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")

	// Store defaults
	viper.SetDefault("store.backend", "file")
	viper.SetDefault("store.file.dir", "./data")
	viper.SetDefault("store.postgres.host", "localhost")
	viper.SetDefault("store.postgres.port", 5432)
	viper.SetDefault("store.postgres.user", "postgres")
	viper.SetDefault("store.postgres.password", "postgres")
	viper.SetDefault("store.postgres.dbname", "dareroom")
	viper.SetDefault("store.postgres.sslmode", "disable")
	viper.SetDefault("store.postgres.max_open_conns", 25)
	viper.SetDefault("store.postgres.max_idle_conns", 5)
	viper.SetDefault("store.postgres.conn_max_lifetime", "5m")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.pool_size", 10)

	// Session defaults
	viper.SetDefault("session.ttl", "24h")

	// Game defaults
	viper.SetDefault("game.min_players", 2)
	viper.SetDefault("game.room_code_length", 6)
	viper.SetDefault("game.typing_expiry", "3s")
	viper.SetDefault("game.poll_interval", "2s")
	viper.SetDefault("game.typing_interval", "1s")
	viper.SetDefault("game.max_message_len", 2000)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
	viper.SetDefault("log.output_path", "stdout")
}

func bindEnvVariables() {
	// Server
	_ = viper.BindEnv("server.host", "SERVER_HOST")
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.mode", "SERVER_MODE")

	// Store
	_ = viper.BindEnv("store.backend", "STORE_BACKEND")
	_ = viper.BindEnv("store.file.dir", "STORE_DIR")
	_ = viper.BindEnv("store.postgres.host", "DB_HOST")
	_ = viper.BindEnv("store.postgres.port", "DB_PORT")
	_ = viper.BindEnv("store.postgres.user", "DB_USER")
	_ = viper.BindEnv("store.postgres.password", "DB_PASSWORD")
	_ = viper.BindEnv("store.postgres.dbname", "DB_NAME")
	_ = viper.BindEnv("store.postgres.sslmode", "DB_SSLMODE")

	// Redis
	_ = viper.BindEnv("redis.host", "REDIS_HOST")
	_ = viper.BindEnv("redis.port", "REDIS_PORT")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Session
	_ = viper.BindEnv("session.ttl", "SESSION_TTL")

	// Log
	_ = viper.BindEnv("log.level", "LOG_LEVEL")
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetAddr returns server address
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
