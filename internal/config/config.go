package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env      string `yaml:"env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr            string `yaml:"addr"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Storage struct {
		// postgres | memory
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxOpenConns int  `yaml:"max_open_conns"`
			MaxIdleConns int  `yaml:"max_idle_conns"`
			Migrate      bool `yaml:"migrate"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	JWT struct {
		Secret     string `yaml:"secret"`
		Issuer     string `yaml:"issuer"`
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"jwt"`

	OTP struct {
		TTL  string `yaml:"ttl"`
		Rate struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"rate"`
	} `yaml:"otp"`

	Security struct {
		BcryptCost int `yaml:"bcrypt_cost"`
	} `yaml:"security"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"` // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	} `yaml:"smtp"`

	Providers struct {
		// RedirectURL is where the SPA receives the session token after
		// a social callback (token travels in the URL fragment).
		RedirectURL string         `yaml:"redirect_url"`
		Google      ProviderCreds  `yaml:"google"`
		Github      ProviderCreds  `yaml:"github"`
		Microsoft   ProviderCreds  `yaml:"microsoft"`
	} `yaml:"providers"`
}

type ProviderCreds struct {
	Enabled      bool   `yaml:"enabled"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// Load reads the YAML file at path, fills defaults, applies env
// overrides and validates duration strings. A missing file is fine:
// the config then comes entirely from defaults and environment.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
		} else if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.MaxOpenConns == 0 {
		c.Storage.Postgres.MaxOpenConns = 10
	}
	if c.Storage.Postgres.MaxIdleConns == 0 {
		c.Storage.Postgres.MaxIdleConns = 5
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "signet"
	}
	if c.JWT.SessionTTL == "" {
		c.JWT.SessionTTL = "72h"
	}
	if c.OTP.TTL == "" {
		c.OTP.TTL = "5m"
	}
	if c.OTP.Rate.Limit == 0 {
		c.OTP.Rate.Limit = 5
	}
	if c.OTP.Rate.Window == "" {
		c.OTP.Rate.Window = "10m"
	}
	if c.Security.BcryptCost == 0 {
		c.Security.BcryptCost = 10
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}

	c.applyEnvOverrides()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SessionTTL returns the parsed JWT session lifetime.
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.JWT.SessionTTL)
	return d
}

// OTPTTL returns the parsed one-time code lifetime.
func (c *Config) OTPTTL() time.Duration {
	d, _ := time.ParseDuration(c.OTP.TTL)
	return d
}

// OTPRateWindow returns the parsed issuance throttle window.
func (c *Config) OTPRateWindow() time.Duration {
	d, _ := time.ParseDuration(c.OTP.Rate.Window)
	return d
}

// ShutdownTimeout returns the parsed graceful shutdown budget.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.ShutdownTimeout)
	return d
}

func (c *Config) validate() error {
	for name, s := range map[string]string{
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"jwt.session_ttl":         c.JWT.SessionTTL,
		"otp.ttl":                 c.OTP.TTL,
		"otp.rate.window":         c.OTP.Rate.Window,
	} {
		if _, err := time.ParseDuration(s); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: storage.driver must be postgres or memory, got %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn is required for the postgres driver")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret is required")
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

// applyEnvOverrides lets environment variables win over the YAML file.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_OPEN_CONNS"); ok {
		c.Storage.Postgres.MaxOpenConns = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_IDLE_CONNS"); ok {
		c.Storage.Postgres.MaxIdleConns = v
	}
	if v, ok := getEnvBool("POSTGRES_MIGRATE"); ok {
		c.Storage.Postgres.Migrate = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SESSION_TTL"); ok {
		c.JWT.SessionTTL = v
	}

	// OTP
	if v, ok := getEnvStr("OTP_TTL"); ok {
		c.OTP.TTL = v
	}
	if v, ok := getEnvInt("OTP_RATE_LIMIT"); ok {
		c.OTP.Rate.Limit = v
	}
	if v, ok := getEnvStr("OTP_RATE_WINDOW"); ok {
		c.OTP.Rate.Window = v
	}

	// SECURITY
	if v, ok := getEnvInt("BCRYPT_COST"); ok {
		c.Security.BcryptCost = v
	}

	// SMTP
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SMTP_INSECURE_SKIP_VERIFY"); ok {
		c.SMTP.InsecureSkipVerify = v
	}

	// PROVIDERS
	if v, ok := getEnvStr("REDIRECT_URL"); ok {
		c.Providers.RedirectURL = v
	}
	overrideProvider("GOOGLE", &c.Providers.Google)
	overrideProvider("GITHUB", &c.Providers.Github)
	overrideProvider("MICROSOFT", &c.Providers.Microsoft)
}

func overrideProvider(prefix string, p *ProviderCreds) {
	if v, ok := getEnvBool(prefix + "_ENABLED"); ok {
		p.Enabled = v
	}
	if v, ok := getEnvStr(prefix + "_CLIENT_ID"); ok {
		p.ClientID = v
	}
	if v, ok := getEnvStr(prefix + "_CLIENT_SECRET"); ok {
		p.ClientSecret = v
	}
	if v, ok := getEnvStr(prefix + "_REDIRECT_URL"); ok {
		p.RedirectURL = v
	}
}
