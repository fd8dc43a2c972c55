package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Identity    IdentityConfig    `yaml:"identity"`
	JWT         JWTConfig         `yaml:"jwt"`
	Redis       RedisConfig       `yaml:"redis"`
	Email       EmailConfig       `yaml:"email"`
	Storage     StorageConfig     `yaml:"storage"`
	Eligibility EligibilityConfig `yaml:"eligibility"`
	Log         LogConfig         `yaml:"log"`
	Scheduler   SchedulerConfig   `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// IdentityConfig selects and configures the identity provider
type IdentityConfig struct {
	Provider        string `yaml:"provider"` // "firebase" or "local"
	CredentialsFile string `yaml:"credentials_file"`
	WebAPIKey       string `yaml:"web_api_key"`
}

// JWTConfig contains token settings for the local identity provider
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	AccessTokenExpiry  int    `yaml:"access_token_expiry_minutes"`
	RefreshTokenExpiry int    `yaml:"refresh_token_expiry_minutes"`
}

// RedisConfig contains the OTP store connection settings
type RedisConfig struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	OTPExpiry  int    `yaml:"otp_expiry_minutes"`
	OTPLength  int    `yaml:"otp_length"`
	MaxRetries int    `yaml:"max_verify_attempts"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// StorageConfig contains document storage settings
type StorageConfig struct {
	Type         string   `yaml:"type"`       // "local"
	UploadDir    string   `yaml:"upload_dir"` // For local storage
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// EligibilityConfig tunes the renewal eligibility rules
type EligibilityConfig struct {
	RenewalWindowDays         int  `yaml:"renewal_window_days"`
	AllowRenewalWithoutExpiry bool `yaml:"allow_renewal_without_expiry"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	MarkMissedAppointments   string `yaml:"mark_missed_appointments"`
	SendAppointmentReminders string `yaml:"send_appointment_reminders"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Identity
	if val := os.Getenv("IDENTITY_PROVIDER"); val != "" {
		c.Identity.Provider = val
	}
	if val := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); val != "" {
		c.Identity.CredentialsFile = val
	}
	if val := os.Getenv("FIREBASE_WEB_API_KEY"); val != "" {
		c.Identity.WebAPIKey = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Identity validation
	switch c.Identity.Provider {
	case "", "local":
		c.Identity.Provider = "local"
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT secret is required for local identity provider")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
	case "firebase":
		if c.Identity.CredentialsFile == "" {
			return fmt.Errorf("firebase credentials file is required")
		}
	default:
		return fmt.Errorf("unknown identity provider: %s", c.Identity.Provider)
	}

	// Redis validation
	if c.Redis.Addr == "" {
		return fmt.Errorf("redis address is required")
	}

	// Email validation
	if c.Email.APIKey == "" {
		return fmt.Errorf("sendgrid API key is required")
	}
	if c.Email.FromEmail == "" {
		return fmt.Errorf("sender email is required")
	}

	// Storage validation
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}

	// Token defaults
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.JWT.RefreshTokenExpiry == 0 {
		c.JWT.RefreshTokenExpiry = 60 * 24 * 7
	}

	// OTP defaults
	if c.Redis.OTPExpiry == 0 {
		c.Redis.OTPExpiry = 10
	}
	if c.Redis.OTPLength == 0 {
		c.Redis.OTPLength = 6
	}
	if c.Redis.MaxRetries == 0 {
		c.Redis.MaxRetries = 5
	}

	// Eligibility defaults
	if c.Eligibility.RenewalWindowDays == 0 {
		c.Eligibility.RenewalWindowDays = 60
	}

	// Scheduler defaults
	if c.Scheduler.MarkMissedAppointments == "" {
		c.Scheduler.MarkMissedAppointments = "0 0 18 * * *" // 6 PM UTC
	}
	if c.Scheduler.SendAppointmentReminders == "" {
		c.Scheduler.SendAppointmentReminders = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
