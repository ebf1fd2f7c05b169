package configs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var (
	// ErrMissingWorkflowURL - workflow.url is not configured
	ErrMissingWorkflowURL = errors.New("workflow url is not configured")
	// ErrInvalidWorkflowURL - workflow.url is not an absolute http(s) URL
	ErrInvalidWorkflowURL = errors.New("workflow url is invalid")
)

// Default values applied when a key is absent from file and environment
const (
	DefaultWorkflowTimeout    = 30 * time.Second
	DefaultSessionIdleTimeout = 30 * time.Minute
	DefaultSessionSweepPeriod = 5 * time.Minute
	DefaultAppPort            = "9089"
	defaultConfigName         = "config"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Workflow `mapstructure:"workflow"`
	Session  `mapstructure:"session"`
	Postgres `mapstructure:"postgres"`
	Line     `mapstructure:"line"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Workflow struct - remote automation workflow endpoint
type Workflow struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Session struct
type Session struct {
	IdleTimeout   time.Duration `mapstructure:"idle_timeout"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Postgres struct - optional transcript archive
type Postgres struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Line struct - optional LINE channel
type Line struct {
	Enabled       bool   `mapstructure:"enabled"`
	ChannelSecret string `mapstructure:"channel_secret"`
	ChannelToken  string `mapstructure:"channel_token"`
}

var config Config

// InitViper func
// Reads config.yaml from path, overlays config.<env>.yaml when present and
// lets environment variables (APP_PORT, WORKFLOW_URL, ...) override both.
func InitViper(path, env string) error {
	return getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

// WatchConfig logs config file changes; values read at startup stay in effect
func WatchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		logrus.Warnf("Config file has changed: %s (restart to apply)", e.Name)
	})
}

// Validate checks the keys the process cannot start without
func (c *Config) Validate() error {
	raw := strings.TrimSpace(c.Workflow.URL)
	if raw == "" {
		return ErrMissingWorkflowURL
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkflowURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidWorkflowURL, raw)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "")
	viper.SetDefault("app.port", DefaultAppPort)
	viper.SetDefault("workflow.url", "")
	viper.SetDefault("workflow.timeout", DefaultWorkflowTimeout)
	viper.SetDefault("session.idle_timeout", DefaultSessionIdleTimeout)
	viper.SetDefault("session.sweep_interval", DefaultSessionSweepPeriod)
	viper.SetDefault("postgres.enabled", false)
	viper.SetDefault("postgres.host", "")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)
	viper.SetDefault("line.enabled", false)
	viper.SetDefault("line.channel_secret", "")
	viper.SetDefault("line.channel_token", "")
}

func getConfig(path, env string) error {
	viper.Reset()
	config = Config{}

	setDefaults()
	viper.SetConfigName(defaultConfigName)
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		logrus.Warnf("No %s file in %s, using defaults and environment", defaultConfigName, path)
	}

	if env != "" {
		overlay := filepath.Join(path, defaultConfigName+"."+env+".yaml")
		if _, err := os.Stat(overlay); err == nil {
			viper.SetConfigFile(overlay)
			if err := viper.MergeInConfig(); err != nil {
				return fmt.Errorf("failed to merge %s config: %w", env, err)
			}
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.App.Env == "" {
		config.App.Env = env
	}
	return nil
}
