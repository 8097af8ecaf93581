package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/reqrelay/internal/constants"
	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/version"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// Backend selects the host transport: "nethttp", "browser" or "none".
	Backend string `mapstructure:"backend"`
	// UserAgent is sent when the relayed request carries no User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// RequestTimeout bounds a single relayed call from the caller side (e.g., "30s").
	// Empty string or "0" disables it.
	RequestTimeout string `mapstructure:"request_timeout"`
	// MaxLogLength limits the size of request/response dumps logged at debug level (e.g., "1 MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// ListenAddress is the address the HTTP API listens on.
	ListenAddress string `mapstructure:"listen_address"`
	// BrowserHeadless runs the browser backend without a visible window.
	BrowserHeadless bool `mapstructure:"browser_headless"`
	// BrowserBin is the path to a Chrome binary for the browser backend.
	// Empty string means auto-detection, downloading Chromium as a last resort.
	BrowserBin string `mapstructure:"browser_bin"`
	// BrowserOrigin is the page the browser backend issues fetch() calls from.
	BrowserOrigin string `mapstructure:"browser_origin"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedRequestTimeout is the parsed caller-level timeout; zero means none.
	ParsedRequestTimeout time.Duration
	// ParsedMaxLogLength is the parsed dump limit in bytes.
	ParsedMaxLogLength uint64
}

// Backend names accepted by the configuration.
const (
	BackendNetHTTP = "nethttp"
	BackendBrowser = "browser"
	BackendNone    = "none"
)

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".reqrelay.yaml"

	// DefaultLogLevel is the log level used when nothing is configured.
	DefaultLogLevel = "info"

	// DefaultRequestTimeout is the caller-level timeout used when nothing is configured.
	DefaultRequestTimeout = "60s"

	// DefaultMaxLogLength is the default maximum size (in bytes) for logged dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultListenAddress is the default address of the HTTP API.
	DefaultListenAddress = "127.0.0.1:8080"

	// DefaultBrowserOrigin is the default page the browser backend runs fetch() from.
	DefaultBrowserOrigin = "about:blank"

	// envPrefix prefixes environment variables that override file settings.
	envPrefix = "REQRELAY"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownBackend indicates that the transport backend is not recognized.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrInvalidRequestTimeout indicates that the request timeout is negative.
	ErrInvalidRequestTimeout = errors.New("request_timeout must not be negative")
	// ErrInvalidMaxLogLength indicates that the dump limit is zero.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
	// ErrConfigFileExists indicates that a config file would be overwritten.
	ErrConfigFileExists = errors.New("config file already exists")
)

// fileConfig is the on-disk layout written by WriteDefaultConfig.
// Field order here is the order keys appear in the generated file.
type fileConfig struct {
	LogLevel        string `yaml:"log_level"`
	Backend         string `yaml:"backend"`
	UserAgent       string `yaml:"user_agent"`
	RequestTimeout  string `yaml:"request_timeout"`
	MaxLogLength    string `yaml:"max_log_length"`
	ListenAddress   string `yaml:"listen_address"`
	BrowserHeadless bool   `yaml:"browser_headless"`
	BrowserBin      string `yaml:"browser_bin"`
	BrowserOrigin   string `yaml:"browser_origin"`
}

// DefaultUserAgent returns the User-Agent used when none is configured.
func DefaultUserAgent() string {
	return "reqrelay/" + version.Short()
}

// Backends lists every accepted backend name.
func Backends() []string {
	return []string{BackendNetHTTP, BackendBrowser, BackendNone}
}

func defaults() fileConfig {
	return fileConfig{
		LogLevel:        DefaultLogLevel,
		Backend:         BackendNetHTTP,
		UserAgent:       DefaultUserAgent(),
		RequestTimeout:  DefaultRequestTimeout,
		MaxLogLength:    humanize.IBytes(DefaultMaxLogLength),
		ListenAddress:   DefaultListenAddress,
		BrowserHeadless: true,
		BrowserBin:      "",
		BrowserOrigin:   DefaultBrowserOrigin,
	}
}

// LoadConfig loads configuration settings from a YAML file.
// A missing default file is not an error: built-in defaults and environment overrides apply.
// A missing file that was named explicitly is an error.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFile := configFilename == ""
	if isDefaultFile {
		configFilename = DefaultConfigFilename
	}

	viper.Reset()
	setDefaults()

	viper.SetConfigFile(configFilename)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if !isDefaultFile || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendNetHTTP
	}

	if !slices.Contains(Backends(), cfg.Backend) {
		return fmt.Errorf("%w: '%s', expected one of %v", ErrUnknownBackend, cfg.Backend, Backends())
	}

	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent()
	}

	requestTimeout := strings.TrimSpace(cfg.RequestTimeout)
	cfg.ParsedRequestTimeout = 0

	if requestTimeout != "" && requestTimeout != "0" {
		parsedRequestTimeout, err := time.ParseDuration(requestTimeout)
		if err != nil {
			return fmt.Errorf("failed to parse request timeout: %w", err)
		}

		if parsedRequestTimeout < 0 {
			return ErrInvalidRequestTimeout
		}

		cfg.ParsedRequestTimeout = parsedRequestTimeout
	}

	cfg.ParsedMaxLogLength = DefaultMaxLogLength

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" {
		parsedMaxLogLength, err := humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}

		if parsedMaxLogLength == 0 {
			return ErrInvalidMaxLogLength
		}

		cfg.ParsedMaxLogLength = parsedMaxLogLength
	}

	if strings.TrimSpace(cfg.ListenAddress) == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if strings.TrimSpace(cfg.BrowserOrigin) == "" {
		cfg.BrowserOrigin = DefaultBrowserOrigin
	}

	return nil
}

// WriteDefaultConfig writes a configuration file filled with defaults.
// An existing file is only replaced when overwrite is true.
func WriteDefaultConfig(configFilename string, overwrite bool) (string, error) {
	if configFilename == "" {
		configFilename = DefaultConfigFilename
	}

	if !overwrite {
		if _, err := os.Stat(configFilename); err == nil {
			return "", fmt.Errorf("%w: %s", ErrConfigFileExists, configFilename)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to inspect config file: %w", err)
		}
	}

	content, err := yaml.Marshal(defaults())
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFilename, nil
}

// setDefaults registers built-in values so that keys exist even without a config file,
// which is also what lets environment overrides reach viper.Unmarshal.
func setDefaults() {
	d := defaults()

	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("backend", d.Backend)
	viper.SetDefault("user_agent", d.UserAgent)
	viper.SetDefault("request_timeout", d.RequestTimeout)
	viper.SetDefault("max_log_length", d.MaxLogLength)
	viper.SetDefault("listen_address", d.ListenAddress)
	viper.SetDefault("browser_headless", d.BrowserHeadless)
	viper.SetDefault("browser_bin", d.BrowserBin)
	viper.SetDefault("browser_origin", d.BrowserOrigin)
}
