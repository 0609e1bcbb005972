package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Matching MatchingConfig
	Comments CommentsConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret    string
	AccessExpiryMin int
}

type MatchingConfig struct {
	MaxDistanceMiles float64
	PageSize         int
}

type CommentsConfig struct {
	EditWindow   time.Duration
	MaxViewDepth int
	BackupDir    string
	BackupKeep   int
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("MATCH_MAX_DISTANCE_MILES", 100.0)
	viper.SetDefault("MATCH_PAGE_SIZE", 10)
	viper.SetDefault("COMMENT_EDIT_WINDOW_HOURS", 24)
	viper.SetDefault("COMMENT_MAX_VIEW_DEPTH", 5)
	viper.SetDefault("COMMENT_BACKUP_DIR", "data/comment-backups")
	viper.SetDefault("COMMENT_BACKUP_KEEP", 5)

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:    viper.GetString("JWT_ACCESS_SECRET"),
			AccessExpiryMin: viper.GetInt("JWT_ACCESS_EXPIRY_MIN"),
		},
		Matching: MatchingConfig{
			MaxDistanceMiles: viper.GetFloat64("MATCH_MAX_DISTANCE_MILES"),
			PageSize:         viper.GetInt("MATCH_PAGE_SIZE"),
		},
		Comments: CommentsConfig{
			EditWindow:   time.Duration(viper.GetInt("COMMENT_EDIT_WINDOW_HOURS")) * time.Hour,
			MaxViewDepth: viper.GetInt("COMMENT_MAX_VIEW_DEPTH"),
			BackupDir:    viper.GetString("COMMENT_BACKUP_DIR"),
			BackupKeep:   viper.GetInt("COMMENT_BACKUP_KEEP"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWT.AccessSecret == "" {
		return fmt.Errorf("JWT access secret is required")
	}
	if len(c.JWT.AccessSecret) < 32 {
		return fmt.Errorf("JWT access secret must be at least 32 characters")
	}
	if c.Matching.MaxDistanceMiles <= 0 {
		return fmt.Errorf("matching max distance must be positive")
	}
	if c.Matching.PageSize <= 0 {
		return fmt.Errorf("matching page size must be positive")
	}
	if c.Comments.EditWindow <= 0 {
		return fmt.Errorf("comment edit window must be positive")
	}
	if c.Comments.BackupKeep <= 0 {
		return fmt.Errorf("comment backup keep count must be positive")
	}
	return nil
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
