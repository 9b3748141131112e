package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the console
type Config struct {
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	Backend    BackendConfig    `mapstructure:"backend" yaml:"backend"`
	Console    ConsoleConfig    `mapstructure:"console" yaml:"console"`
	Upload     UploadConfig     `mapstructure:"upload" yaml:"upload"`
	Session    SessionConfig    `mapstructure:"session" yaml:"session"`
	Journal    JournalConfig    `mapstructure:"journal" yaml:"journal"`
	Monitoring MonitoringConfig `mapstructure:"monitoring" yaml:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" yaml:"port"`
	Host            string        `mapstructure:"host" yaml:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// BackendConfig points the console at the environmental REST backend.
// A zero Timeout means requests are not bounded by the client.
type BackendConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
}

// AudioMode selects how an audio card opens its correlation view.
type AudioMode string

const (
	AudioModeNavigated AudioMode = "navigated"
	AudioModeInline    AudioMode = "inline"
)

type ConsoleConfig struct {
	Title     string    `mapstructure:"title" yaml:"title"`
	AudioMode AudioMode `mapstructure:"audio_mode" yaml:"audio_mode"`
	// TimeFilters adds time-of-day inputs next to the query date bounds.
	TimeFilters bool `mapstructure:"time_filters" yaml:"time_filters"`
}

type UploadConfig struct {
	MaxFileSize     int64    `mapstructure:"max_file_size" yaml:"max_file_size"`
	CSVExtensions   []string `mapstructure:"csv_extensions" yaml:"csv_extensions"`
	AudioExtensions []string `mapstructure:"audio_extensions" yaml:"audio_extensions"`
}

type SessionConfig struct {
	Store      string        `mapstructure:"store" yaml:"store"`
	CookieName string        `mapstructure:"cookie_name" yaml:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Redis      RedisConfig   `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"-"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// JournalConfig configures the local activity journal.
type JournalConfig struct {
	Driver        string        `mapstructure:"driver" yaml:"driver"`
	DSN           string        `mapstructure:"dsn" yaml:"dsn"`
	Retention     time.Duration `mapstructure:"retention" yaml:"retention"`
	PruneSchedule string        `mapstructure:"prune_schedule" yaml:"prune_schedule"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// LoggerLevel returns LogLevel in the form the go-nuts logger expects.
func (c MonitoringConfig) LoggerLevel() string {
	return strings.ToUpper(strings.TrimSpace(c.LogLevel))
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENVMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Load config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Backend defaults
	v.SetDefault("backend.base_url", "http://localhost:5000")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("backend.user_agent", "envmon-console")

	// Console defaults
	v.SetDefault("console.title", "Environmental Monitoring")
	v.SetDefault("console.audio_mode", string(AudioModeNavigated))
	v.SetDefault("console.time_filters", true)

	// Upload defaults
	v.SetDefault("upload.max_file_size", 200*1024*1024) // 200MB
	v.SetDefault("upload.csv_extensions", []string{".csv"})
	v.SetDefault("upload.audio_extensions", []string{".mp3", ".wav", ".ogg", ".flac"})

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookie_name", "envmon_session")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.redis.host", "localhost")
	v.SetDefault("session.redis.port", 6379)
	v.SetDefault("session.redis.db", 0)

	// Journal defaults
	v.SetDefault("journal.driver", "sqlite3")
	v.SetDefault("journal.dsn", "envmon-console.db")
	v.SetDefault("journal.retention", "720h")
	v.SetDefault("journal.prune_schedule", "@hourly")

	// Monitoring defaults
	v.SetDefault("monitoring.log_level", "info")
}

func validateConfig(config *Config) error {
	u, err := url.Parse(config.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend base_url must be an absolute URL, got %q", config.Backend.BaseURL)
	}
	switch config.Console.AudioMode {
	case AudioModeNavigated, AudioModeInline:
	default:
		return fmt.Errorf("console audio_mode must be %q or %q", AudioModeNavigated, AudioModeInline)
	}
	switch config.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("session store must be memory or redis, got %q", config.Session.Store)
	}
	switch config.Journal.Driver {
	case "sqlite3", "postgres", "":
	default:
		return fmt.Errorf("journal driver must be sqlite3, postgres or empty, got %q", config.Journal.Driver)
	}
	switch config.Monitoring.LoggerLevel() {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("monitoring log_level must be debug, info, warn or error, got %q", config.Monitoring.LogLevel)
	}
	if config.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload max_file_size must be positive")
	}
	return nil
}
