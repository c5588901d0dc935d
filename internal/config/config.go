package config

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultServerPort      = 8080
	defaultServerTimeout   = 30
	defaultShutdownTimeout = 10
	defaultLLMModel        = "claude-sonnet-4-5"
	defaultLLMTimeout      = 30 * time.Second
	defaultSalesEmail      = "sales@ebottles.com"
	defaultFromEmail       = "noreply@ebottles.com"
)

type Config struct {
	Debug  bool         `env:"APP_DEBUG" yaml:"debug"`
	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Google GoogleConfig `yaml:"google"`
	Email  EmailConfig  `yaml:"email"`
	// APIKey is an optional shared secret; when set, requests must carry it
	// in the X-API-KEY header.
	APIKey string `env:"API_KEY" yaml:"api_key"`
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"     yaml:"host"`
	Port            int           `env:"SERVER_PORT"     yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	CORSOrigins     []string      `env:"ALLOWED_ORIGINS" yaml:"cors_origins"`
}

// LLMConfig holds settings for the extraction model.
type LLMConfig struct {
	APIKey  string        `env:"LLM_API_KEY" yaml:"api_key"`
	Model   string        `env:"LLM_MODEL"   yaml:"model"`
	Timeout time.Duration `env:"LLM_TIMEOUT" yaml:"timeout"`
	// OpenAIAPIKey is used for Whisper transcription only.
	OpenAIAPIKey string `env:"OPENAI_API_KEY" yaml:"openai_api_key"`
}

// GoogleConfig holds service account credentials and the target sheet.
// Credentials may arrive as raw JSON, base64-encoded JSON, or a file path;
// the first non-empty source wins, checked in that order.
type GoogleConfig struct {
	ServiceAccountJSON     string `env:"GOOGLE_SERVICE_ACCOUNT_JSON"      yaml:"service_account_json"`
	ServiceAccountJSONB64  string `env:"GOOGLE_SERVICE_ACCOUNT_JSON_B64"  yaml:"service_account_json_b64"`
	ServiceAccountJSONPath string `env:"GOOGLE_SERVICE_ACCOUNT_JSON_PATH" yaml:"service_account_json_path"`
	SheetID                string `env:"GOOGLE_SHEET_ID"                  yaml:"sheet_id"`
}

type EmailConfig struct {
	NotificationEmail string   `env:"NOTIFICATION_EMAIL"        yaml:"notification_email"`
	FromEmail         string   `env:"NOTIFICATION_FROM_EMAIL"   yaml:"from_email"`
	AdminEmails       []string `env:"ADMIN_NOTIFICATION_EMAILS" yaml:"admin_emails"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Email.NotificationEmail == "" {
		return errors.New("email.notification_email is required")
	}
	return nil
}

// Load reads an optional YAML config file, applies defaults, then applies
// environment variable overrides (env always wins). The file is optional
// because deployments are typically configured through the environment.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(cfg)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:5173", // Widget dev server
			"http://localhost:3000", // Landing page dev server
		}
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaultLLMModel
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = defaultLLMTimeout
	}
	if cfg.Email.NotificationEmail == "" {
		cfg.Email.NotificationEmail = defaultSalesEmail
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = defaultFromEmail
	}
}

// GoogleCredentialsJSON resolves the service account credentials, or nil if
// none are configured or the configured value is not valid JSON. A nil
// result puts the ledger and notifier into degraded (log-only) mode rather
// than failing startup.
func (c *Config) GoogleCredentialsJSON() []byte {
	if raw := strings.TrimSpace(c.Google.ServiceAccountJSON); raw != "" {
		if json.Valid([]byte(raw)) {
			return []byte(raw)
		}
		return nil
	}

	if b64 := strings.TrimSpace(c.Google.ServiceAccountJSONB64); b64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil || !json.Valid(decoded) {
			return nil
		}
		return decoded
	}

	if path := strings.TrimSpace(c.Google.ServiceAccountJSONPath); path != "" {
		content, err := os.ReadFile(path)
		if err != nil || !json.Valid(content) {
			return nil
		}
		return content
	}

	return nil
}
