// Package config loads devfolio settings from defaults, an optional YAML
// file, a .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved application configuration.
type Config struct {
	Port     int            `mapstructure:"port"`
	Dev      bool           `mapstructure:"dev"`
	Site     SiteConfig     `mapstructure:"site"`
	Content  ContentConfig  `mapstructure:"content"`
	Projects ProjectsConfig `mapstructure:"projects"`
	DB       DBConfig       `mapstructure:"db"`
	Mail     MailConfig     `mapstructure:"mail"`
	GitHub   GitHubConfig   `mapstructure:"github"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

// SiteConfig holds site-wide settings passed to every template.
type SiteConfig struct {
	URL         string `mapstructure:"url"`
	Name        string `mapstructure:"name"`
	Author      string `mapstructure:"author"`
	Description string `mapstructure:"description"`
	Effects     bool   `mapstructure:"effects"`
	ThemeColor  string `mapstructure:"theme_color"`
}

type ContentConfig struct {
	Dir    string `mapstructure:"dir"`
	Images string `mapstructure:"images"`
}

type ProjectsConfig struct {
	File string `mapstructure:"file"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// MailConfig configures the transactional mail provider used by the
// contact form.
type MailConfig struct {
	Provider     string `mapstructure:"provider"` // "smtp" or "resend"
	To           string `mapstructure:"to"`
	From         string `mapstructure:"from"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     string `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPass     string `mapstructure:"smtp_pass"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
}

type GitHubConfig struct {
	Token    string        `mapstructure:"token"`
	BaseURL  string        `mapstructure:"base_url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// envBindings maps config keys to the environment variable names operators
// already use. Several keep the historical unprefixed names.
var envBindings = map[string]string{
	"port":                "PORT",
	"dev":                 "DEV",
	"site.url":            "SITE_URL",
	"site.name":           "SITE_NAME",
	"site.author":         "SITE_AUTHOR",
	"site.description":    "SITE_DESCRIPTION",
	"site.effects":        "SITE_EFFECTS",
	"site.theme_color":    "SITE_THEME_COLOR",
	"content.dir":         "CONTENT_DIR",
	"content.images":      "IMAGES_DIR",
	"projects.file":       "PROJECTS_FILE",
	"db.path":             "DB_PATH",
	"mail.provider":       "MAIL_PROVIDER",
	"mail.to":             "TO_EMAIL",
	"mail.from":           "FROM_EMAIL",
	"mail.smtp_host":      "SMTP_HOST",
	"mail.smtp_port":      "SMTP_PORT",
	"mail.smtp_user":      "SMTP_USER",
	"mail.smtp_pass":      "SMTP_PASS",
	"mail.resend_api_key": "RESEND_API_KEY",
	"github.token":        "GITHUB_TOKEN",
	"github.base_url":     "GITHUB_API_URL",
	"github.cache_ttl":    "GITHUB_CACHE_TTL",
	"github.timeout":      "GITHUB_TIMEOUT",
	"admin.username":      "ADMIN_USERNAME",
	"admin.password":      "ADMIN_PASSWORD",
	"log.level":           "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("dev", false)
	v.SetDefault("site.url", "http://localhost:8080")
	v.SetDefault("site.name", "devfolio")
	v.SetDefault("site.author", "")
	v.SetDefault("site.description", "Portfolio and technical blog")
	v.SetDefault("site.effects", true)
	v.SetDefault("site.theme_color", "#0d1117")
	v.SetDefault("content.dir", "content")
	v.SetDefault("content.images", "images")
	v.SetDefault("projects.file", "public/projects-data.json")
	v.SetDefault("db.path", "devfolio.db")
	v.SetDefault("mail.provider", "smtp")
	v.SetDefault("mail.smtp_host", "smtp.gmail.com")
	v.SetDefault("mail.smtp_port", "587")
	v.SetDefault("github.base_url", "https://api.github.com")
	v.SetDefault("github.cache_ttl", time.Hour)
	v.SetDefault("github.timeout", 5*time.Second)
	v.SetDefault("admin.username", "admin")
	v.SetDefault("log.level", "info")
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file. When empty, devfolio.yaml in the
	// working directory is used if present.
	File string
	// EnvFile is loaded into the process environment before reading
	// variables. Missing files are ignored.
	EnvFile string
}

// Load resolves configuration. Existing environment variables win over
// values from the .env file, as godotenv.Load never overrides them.
func Load(opts Options) (Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// A missing .env is the normal production case.
	_ = godotenv.Load(envFile)

	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("devfolio")
		v.SetConfigType("yaml")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.File != "" {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	cfg.Mail.Provider = strings.ToLower(strings.TrimSpace(cfg.Mail.Provider))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at request time.
// Mail credentials are intentionally optional.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	u, err := url.Parse(c.Site.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("site url %q must be an absolute URL", c.Site.URL)
	}
	switch c.Mail.Provider {
	case "smtp", "resend":
	default:
		return fmt.Errorf("unknown mail provider %q", c.Mail.Provider)
	}
	if c.GitHub.CacheTTL < 0 {
		return fmt.Errorf("github cache ttl must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
