package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultSessionSecret is the out-of-the-box signing secret; production deployments must override it.
	DefaultSessionSecret = "change-me"
	// DefaultAdminCode is the out-of-the-box admin code.
	DefaultAdminCode = "123456"

	// bcrypt ignores input past 72 bytes
	maxAdminCodeBytes = 72
)

// Store drivers
const (
	DriverMongoDB  = "mongodb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	LogLevel string
	Server   ServerConfig
	Store    StoreConfig
	Admin    AdminConfig
	Spin     SpinConfig
	Business BusinessConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	StaticDir      string
}

// StoreConfig selects and addresses the backing store
type StoreConfig struct {
	Driver   string
	URI      string
	Database string
}

// AdminConfig holds the admin code and session signing settings
type AdminConfig struct {
	Code            string
	SessionSecret   string
	SessionTTLHours int
}

// SpinConfig holds cooldown settings
type SpinConfig struct {
	CooldownHours float64
	ExemptDNIs    []string
}

// BusinessConfig seeds the configuration singleton on first boot
type BusinessConfig struct {
	Name           string
	InstagramQRURL string
}

// envBindings maps config keys to the environment variables that feed them.
// The first variable found wins.
var envBindings = map[string][]string{
	"Env":                     {"APP_ENV", "NODE_ENV"},
	"LogLevel":                {"LOG_LEVEL"},
	"Server.Port":             {"PORT"},
	"Server.AllowedOrigins":   {"CORS_ALLOWED_ORIGINS"},
	"Server.StaticDir":        {"STATIC_DIR"},
	"Store.Driver":            {"STORE_DRIVER"},
	"Store.URI":               {"MONGO_URI", "STORE_URI"},
	"Store.Database":          {"MONGO_DB"},
	"Admin.Code":              {"ADMIN_CODE"},
	"Admin.SessionSecret":     {"ADMIN_SESSION_SECRET"},
	"Admin.SessionTTLHours":   {"ADMIN_SESSION_TTL_HOURS"},
	"Spin.CooldownHours":      {"COOLDOWN_HOURS"},
	"Spin.ExemptDNIs":         {"EXEMPT_DNIS"},
	"Business.Name":           {"NEGOCIO_NOMBRE"},
	"Business.InstagramQRURL": {"INSTAGRAM_QR_URL"},
}

// Load loads configuration from an optional config.yaml under path and from
// environment variables, which take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")

	setDefaults(v)

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Env", "development")
	v.SetDefault("LogLevel", "info")
	v.SetDefault("Server.Port", "3000")
	v.SetDefault("Server.AllowedOrigins", []string{"*"})
	v.SetDefault("Server.StaticDir", "public")
	v.SetDefault("Store.Driver", DriverMongoDB)
	v.SetDefault("Store.URI", "mongodb://localhost:27017")
	v.SetDefault("Store.Database", "ruleta")
	v.SetDefault("Admin.Code", DefaultAdminCode)
	v.SetDefault("Admin.SessionSecret", DefaultSessionSecret)
	v.SetDefault("Admin.SessionTTLHours", 72)
	v.SetDefault("Spin.CooldownHours", 24)
	v.SetDefault("Spin.ExemptDNIs", []string{"45035781"})
	v.SetDefault("Business.Name", "Tu Negocio")
	v.SetDefault("Business.InstagramQRURL", "")
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Server.AllowedOrigins = splitList(c.Server.AllowedOrigins)
	c.Spin.ExemptDNIs = splitList(c.Spin.ExemptDNIs)
	c.Business.Name = strings.TrimSpace(c.Business.Name)
	c.Business.InstagramQRURL = strings.TrimSpace(c.Business.InstagramQRURL)
}

// splitList flattens comma separated entries and drops blanks. Environment
// values arrive as a single "a, b" element when viper skips its slice hook.
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongoDB, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if c.Store.URI == "" {
		return errors.New("store URI is required")
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return fmt.Errorf("CORS origin %q must start with http:// or https://", origin)
		}
	}
	if c.Admin.Code == "" {
		return errors.New("ADMIN_CODE must not be empty")
	}
	if len(c.Admin.Code) > maxAdminCodeBytes {
		return fmt.Errorf("ADMIN_CODE must be at most %d bytes", maxAdminCodeBytes)
	}
	if c.Admin.SessionSecret == "" {
		return errors.New("ADMIN_SESSION_SECRET must not be empty")
	}
	if c.Admin.SessionTTLHours <= 0 {
		return errors.New("ADMIN_SESSION_TTL_HOURS must be positive")
	}
	if c.Spin.CooldownHours < 0 {
		return errors.New("COOLDOWN_HOURS must not be negative")
	}
	return nil
}

// IsProduction reports whether cookies must be marked Secure
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// UsesDefaultSecrets reports whether the admin code or signing secret were left at their defaults
func (c *Config) UsesDefaultSecrets() bool {
	return c.Admin.SessionSecret == DefaultSessionSecret || c.Admin.Code == DefaultAdminCode
}

// SessionTTL returns the admin session lifetime
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Admin.SessionTTLHours) * time.Hour
}

// Cooldown returns the wait imposed between spins of a non-exempt DNI
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.Spin.CooldownHours * float64(time.Hour))
}
