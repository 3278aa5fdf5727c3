package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultServer is the chat backend used when none is configured
	DefaultServer = "http://localhost:5000"

	defaultMaxImageBytes = 10 << 20
	defaultDialTimeout   = 10 * time.Second
	defaultTimeFormat    = "15:04"

	configDirName  = ".medimind"
	configFileName = "config.json"
	logFileName    = "medimind.log"

	envPrefix = "MEDIMIND"
)

// Config stores CLI configuration
type Config struct {
	Server                  string        `json:"server" mapstructure:"server"`                                         // Chat backend address
	RequestTimeout          time.Duration `json:"request_timeout" mapstructure:"request_timeout"`                       // 0 waits until the backend answers
	DialTimeout             time.Duration `json:"dial_timeout" mapstructure:"dial_timeout"`                             // TCP dial timeout
	ReadTimeout             time.Duration `json:"read_timeout" mapstructure:"read_timeout"`                             // per-read socket timeout, 0 disables
	MaxImageBytes           int64         `json:"max_image_bytes" mapstructure:"max_image_bytes"`                       // largest attachable image
	KeepAttachmentOnFailure bool          `json:"keep_attachment_on_failure" mapstructure:"keep_attachment_on_failure"` // keep image after a failed analysis
	TimeFormat              string        `json:"time_format" mapstructure:"time_format"`                               // transcript timestamp layout
	Log                     LogConfig     `json:"log" mapstructure:"log"`
}

// LogConfig logging configuration
type LogConfig struct {
	Level     string `json:"level" mapstructure:"level"`
	Format    string `json:"format" mapstructure:"format"`
	Output    string `json:"output" mapstructure:"output"`
	FilePath  string `json:"file_path" mapstructure:"file_path"`
	AddSource bool   `json:"add_source" mapstructure:"add_source"`
}

// GetConfigDir returns the configuration directory (~/.medimind)
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// GetConfigPath returns the configuration file path (~/.medimind/config.json)
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	logPath := logFileName
	if dir, err := GetConfigDir(); err == nil {
		logPath = filepath.Join(dir, logFileName)
	}

	return &Config{
		Server:        DefaultServer,
		DialTimeout:   defaultDialTimeout,
		MaxImageBytes: defaultMaxImageBytes,
		TimeFormat:    defaultTimeFormat,
		Log: LogConfig{
			Level:    "info",
			Format:   "text",
			Output:   "file",
			FilePath: logPath,
		},
	}
}

// Load loads configuration from the default path
func Load() (*Config, error) {
	configFile, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configFile)
}

// LoadFrom loads configuration from configFile. A missing file yields the
// defaults; MEDIMIND_* environment variables override both.
func LoadFrom(configFile string) (*Config, error) {
	return load(configFile, true)
}

// LoadFile loads configuration from configFile alone, ignoring MEDIMIND_*
// environment variables. It is the starting point for rewriting the file.
func LoadFile(configFile string) (*Config, error) {
	return load(configFile, false)
}

func load(configFile string, withEnv bool) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("json")

	v.SetDefault("server", def.Server)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("dial_timeout", def.DialTimeout)
	v.SetDefault("read_timeout", def.ReadTimeout)
	v.SetDefault("max_image_bytes", def.MaxImageBytes)
	v.SetDefault("keep_attachment_on_failure", def.KeepAttachmentOnFailure)
	v.SetDefault("time_format", def.TimeFormat)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.output", def.Log.Output)
	v.SetDefault("log.file_path", def.Log.FilePath)
	v.SetDefault("log.add_source", def.Log.AddSource)

	// Environment overrides, e.g. MEDIMIND_SERVER, MEDIMIND_LOG_LEVEL
	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	server := c.Server
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	if u, err := url.Parse(server); err != nil || u.Host == "" {
		return fmt.Errorf("invalid server address: %q", c.Server)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.DialTimeout < 0 {
		return fmt.Errorf("dial_timeout must not be negative")
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("read_timeout must not be negative")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max_image_bytes must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("invalid log format: %s, must be 'json' or 'text'", c.Log.Format)
	}

	switch c.Log.Output {
	case "stdout", "stderr":
	case "file":
		if c.Log.FilePath == "" {
			return fmt.Errorf("log.file_path is required when log.output is 'file'")
		}
	default:
		return fmt.Errorf("invalid log output: %s", c.Log.Output)
	}

	return nil
}

// Save saves configuration to the default path
func (c *Config) Save() error {
	configFile, err := GetConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configFile)
}

// SaveTo writes the configuration to configFile
func (c *Config) SaveTo(configFile string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600 permission, user read/write only
	if err := os.WriteFile(configFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
