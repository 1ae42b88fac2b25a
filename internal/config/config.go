package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Company    CompanyConfig    `yaml:"company"`
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	SMTP       SMTPConfig       `yaml:"smtp"`
	SMS        SMSConfig        `yaml:"sms"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Seeds      SeedsConfig      `yaml:"seeds"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// CompanyConfig carries the tenant identity used in outbound copy.
type CompanyConfig struct {
	Name         string `yaml:"name"`
	Slogan       string `yaml:"slogan"`
	Phone        string `yaml:"phone"`
	Email        string `yaml:"email"`
	ServiceAreas string `yaml:"service_areas"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// SMTPConfig configures the email sender. Empty username/password degrades to
// "notification skipped, logged".
type SMTPConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	SenderName string `yaml:"sender_name"`
	AdminEmail string `yaml:"admin_email"`
}

// SMSConfig configures the Twilio-backed SMS sender.
type SMSConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromPhone  string `yaml:"from_phone"`
	AdminPhone string `yaml:"admin_phone"`
}

// TelegramConfig configures the optional admin alert channel.
type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type SheetsConfig struct {
	Enabled          bool   `yaml:"enabled"`
	CredentialsFile  string `yaml:"credentials_file"`
	SpreadsheetID    string `yaml:"spreadsheet_id"`
	DispatchTabTitle string `yaml:"dispatch_tab_title"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type SeedsConfig struct {
	Path string `yaml:"path"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func Load(configPath string) (*Config, error) {
	// .env файл необязателен
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Sheets.Enabled {
		if c.Sheets.CredentialsFile == "" {
			return errors.New("sheets credentials file is required when sheets sync is enabled")
		}
		if c.Sheets.SpreadsheetID == "" {
			return errors.New("sheets spreadsheet id is required when sheets sync is enabled")
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.SMTP.Host == "" {
		c.SMTP.Host = "smtp.gmail.com"
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.Company.Name == "" {
		c.Company.Name = "SmartMove Transport"
	}
	if c.SMTP.SenderName == "" {
		c.SMTP.SenderName = c.Company.Name
	}
	if c.Sheets.DispatchTabTitle == "" {
		c.Sheets.DispatchTabTitle = "Dispatch"
	}
	if c.RateLimit.Burst == 0 && c.RateLimit.RPS > 0 {
		c.RateLimit.Burst = 5
	}
}
