package internal

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	BankDirectory BankDirectoryConfig `mapstructure:"bank_directory"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Seed          SeedConfig          `mapstructure:"seed"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig only backs the SQL bank directory. Ledger state is never
// written to it.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Source          string        `mapstructure:"source"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type SecurityConfig struct {
	JWTSecret    string        `mapstructure:"jwt_secret"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	ChallengeTTL time.Duration `mapstructure:"challenge_ttl"`
	OneTimeCode  string        `mapstructure:"one_time_code"`
}

type BankDirectoryConfig struct {
	Driver           string        `mapstructure:"driver"`
	BaseURL          string        `mapstructure:"base_url"`
	APIKey           string        `mapstructure:"api_key"`
	LookupTimeout    time.Duration `mapstructure:"lookup_timeout"`
	SimulatedLatency time.Duration `mapstructure:"simulated_latency"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SeedConfig struct {
	Employees []EmployeeSeed `mapstructure:"employees"`
}

type EmployeeSeed struct {
	ID             string        `mapstructure:"id"`
	Name           string        `mapstructure:"name"`
	Phone          string        `mapstructure:"phone"`
	GrossSalary    int64         `mapstructure:"gross_salary"`
	WorkingDays    int           `mapstructure:"working_days"`
	AdvancedAmount int64         `mapstructure:"advanced_amount"`
	LinkedBank     *BankLinkSeed `mapstructure:"linked_bank"`
}

type BankLinkSeed struct {
	BankCode    string `mapstructure:"bank_code"`
	AccountNo   string `mapstructure:"account_no"`
	AccountName string `mapstructure:"account_name"`
}

const (
	DirectoryDriverStatic = "static"
	DirectoryDriverSQL    = "sql"
	DirectoryDriverHTTP   = "http"

	DefaultOneTimeCode = "123456"

	// StandardCycleDays is the number of working days in a payroll cycle.
	StandardCycleDays = 22
)

// ApplyDefaults fills zero values so a config file only needs overrides.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Source == "" && c.Database.Driver == "sqlite" {
		c.Database.Source = "file::memory:?cache=shared"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Security.SessionTTL == 0 {
		c.Security.SessionTTL = 12 * time.Hour
	}
	if c.Security.ChallengeTTL == 0 {
		c.Security.ChallengeTTL = 5 * time.Minute
	}
	if c.Security.OneTimeCode == "" {
		c.Security.OneTimeCode = DefaultOneTimeCode
	}
	if c.BankDirectory.Driver == "" {
		c.BankDirectory.Driver = DirectoryDriverStatic
	}
	if c.BankDirectory.LookupTimeout == 0 {
		c.BankDirectory.LookupTimeout = 5 * time.Second
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// LoadConfigFromEnv builds the configuration purely from environment
// variables (container deployments).
func LoadConfigFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("HTTP_PORT", 8080),
			BaseURL:        getEnv("HTTP_BASE_URL", ""),
			AllowedOrigins: getEnv("HTTP_ALLOWED_ORIGINS", "*"),
			ReadTimeout:    getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getEnvAsDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:    getEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "sqlite"),
			Source:       getEnv("DB_SOURCE", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			SessionTTL:   getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			ChallengeTTL: getEnvAsDuration("CHALLENGE_TTL", 5*time.Minute),
			OneTimeCode:  getEnv("ONE_TIME_CODE", DefaultOneTimeCode),
		},
		BankDirectory: BankDirectoryConfig{
			Driver:        getEnv("BANK_DIRECTORY_DRIVER", DirectoryDriverStatic),
			BaseURL:       getEnv("BANK_DIRECTORY_URL", ""),
			APIKey:        getEnv("BANK_DIRECTORY_API_KEY", ""),
			LookupTimeout: getEnvAsDuration("BANK_DIRECTORY_TIMEOUT", 5*time.Second),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.BankDirectory.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("bank directory config: %v", err))
	}

	if err := c.Observability.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if err := c.Seed.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("seed config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.Source == "" {
		return errors.New("source is required")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *SecurityConfig) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("jwt_secret must be at least 32 characters")
	}
	if c.SessionTTL < time.Minute {
		return errors.New("session_ttl must be at least 1m")
	}
	if c.OneTimeCode == "" {
		return errors.New("one_time_code is required")
	}
	return nil
}

func (c *BankDirectoryConfig) Validate() error {
	switch c.Driver {
	case DirectoryDriverStatic, DirectoryDriverSQL:
	case DirectoryDriverHTTP:
		if c.BaseURL == "" {
			return errors.New("base_url is required for the http driver")
		}
		if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	if c.LookupTimeout <= 0 {
		return errors.New("lookup_timeout must be positive")
	}
	return nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported level %q", c.Level)
	}
	if c.Format != "json" && c.Format != "text" {
		return fmt.Errorf("unsupported format %q", c.Format)
	}
	return nil
}

func (c *SeedConfig) Validate() error {
	seen := make(map[string]bool, len(c.Employees))
	for _, e := range c.Employees {
		id := NormalizeEmployeeID(e.ID)
		if id == "" {
			return errors.New("employee id is required")
		}
		if seen[id] {
			return fmt.Errorf("duplicate employee id %s", id)
		}
		seen[id] = true
		if e.GrossSalary <= 0 {
			return fmt.Errorf("employee %s: gross_salary must be positive", e.ID)
		}
		if e.WorkingDays < 0 || e.WorkingDays > StandardCycleDays {
			return fmt.Errorf("employee %s: working_days must be between 0 and %d", e.ID, StandardCycleDays)
		}
		if e.AdvancedAmount < 0 {
			return fmt.Errorf("employee %s: advanced_amount must not be negative", e.ID)
		}
	}
	return nil
}

// NormalizeEmployeeID is the canonical form employee codes are stored and
// looked up under.
func NormalizeEmployeeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
