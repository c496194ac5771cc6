package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	SMTP      SMTPConfig
	MQTT      MQTTConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Cleanup   CleanupConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// AuthConfig carries the credential-core knobs: two independent signing
// domains with their own secrets and lifetimes, plus the bcrypt work factor
// applied to every stored secret.
type AuthConfig struct {
	AccessSecret      string
	AccessTTL         time.Duration
	RefreshSecret     string
	RefreshTTL        time.Duration
	RememberMeTTL     time.Duration
	HashCost          int
	VerificationTTL   time.Duration
	PasswordResetTTL  time.Duration
	PasswordResetBase string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	StatusTopic string
}

type RateLimitConfig struct {
	GeneralRPS   float64
	GeneralBurst int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type CleanupConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	viper.SetDefault("ACCESS_TOKEN_EXPIRY_MINUTES", 15)
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DAYS", 7)
	viper.SetDefault("REMEMBER_ME_EXPIRY_DAYS", 30)
	viper.SetDefault("HASH_COST", 10)
	viper.SetDefault("VERIFICATION_CODE_EXPIRY_MINUTES", 15)
	viper.SetDefault("PASSWORD_RESET_EXPIRY_MINUTES", 15)
	viper.SetDefault("CLEANUP_INTERVAL_MINUTES", 60)
	viper.SetDefault("CLEANUP_RETENTION_HOURS", 24)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Auth: AuthConfig{
			AccessSecret:      viper.GetString("JWT_SECRET"),
			AccessTTL:         time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRY_MINUTES")) * time.Minute,
			RefreshSecret:     viper.GetString("JWT_REFRESH_SECRET"),
			RefreshTTL:        time.Duration(viper.GetInt("REFRESH_TOKEN_EXPIRY_DAYS")) * 24 * time.Hour,
			RememberMeTTL:     time.Duration(viper.GetInt("REMEMBER_ME_EXPIRY_DAYS")) * 24 * time.Hour,
			HashCost:          viper.GetInt("HASH_COST"),
			VerificationTTL:   time.Duration(viper.GetInt("VERIFICATION_CODE_EXPIRY_MINUTES")) * time.Minute,
			PasswordResetTTL:  time.Duration(viper.GetInt("PASSWORD_RESET_EXPIRY_MINUTES")) * time.Minute,
			PasswordResetBase: viper.GetString("PASSWORD_RESET_BASE_URL"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			StatusTopic: viper.GetString("MQTT_STATUS_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		Cleanup: CleanupConfig{
			Interval:  time.Duration(viper.GetInt("CLEANUP_INTERVAL_MINUTES")) * time.Minute,
			Retention: time.Duration(viper.GetInt("CLEANUP_RETENTION_HOURS")) * time.Hour,
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
