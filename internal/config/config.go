package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort       = 8080
	DefaultHost       = "127.0.0.1"
	DefaultLogLevel   = "info"
	DefaultMaxPayload = 2 * 1024 * 1024 // 2MB

	// Directory permissions
	DefaultDirPerm = 0o750

	envPrefix = "MCP_FIELD"
)

// ErrVersionRequested is returned by LoadFromFlags when --version was given.
var ErrVersionRequested = errors.New("version requested")

// Config holds all configuration for the field report server
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// OutputDirectory receives documents produced in stdio mode and is the
	// only directory inspect_document may read from.
	OutputDirectory string

	// MaxPayload bounds request bodies, records and inspected files, in bytes.
	MaxPayload int64

	// Verify reads each rendered document back before saving it.
	Verify bool

	// GELFAddress is a host:port to ship log lines to over UDP. Empty disables it.
	GELFAddress string

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	currentDir, err := os.Getwd()
	if err != nil {
		currentDir = "."
	}

	return &Config{
		Mode:            ModeStdio,
		Host:            DefaultHost,
		Port:            DefaultPort,
		OutputDirectory: currentDir,
		MaxPayload:      DefaultMaxPayload,
		Verify:          true,
		Version:         "1.0.0",
		ServerName:      "mcp-field-reports",
		LogLevel:        DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and environment variables and
// returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	if cfg.OutputDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.OutputDirectory); err == nil {
			cfg.OutputDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("dir", cfg.OutputDirectory)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxpayload", cfg.MaxPayload)
	viper.SetDefault("verify", cfg.Verify)
	viper.SetDefault("gelf", cfg.GELFAddress)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("dir", cfg.OutputDirectory, "Directory generated documents are written to")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxpayload", cfg.MaxPayload, "Maximum record, request or document size in bytes")
	pflag.Bool("verify", cfg.Verify, "Read back every generated document before saving it")
	pflag.String("gelf", cfg.GELFAddress, "Ship logs to a GELF UDP endpoint (host:port)")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	for _, name := range []string{"mode", "host", "port", "dir", "loglevel", "maxpayload", "verify", "gelf"} {
		_ = viper.BindPFlag(name, pflag.Lookup(name))
	}
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nMCP Field Reports - generates work orders and daily reports as PDF\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                          "+
			"# stdio mode, documents in current directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --dir=/srv/berichte                      "+
			"# stdio mode with custom output directory\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server                            # HTTP server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=server --gelf=graylog:12201       # HTTP server shipping logs\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_MODE        Server mode\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_DIR         Output directory\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_MAXPAYLOAD  Maximum payload size\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_VERIFY      Verify generated documents\n")
		fmt.Fprintf(os.Stderr, "  MCP_FIELD_GELF        GELF UDP address\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return ErrVersionRequested
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.OutputDirectory = viper.GetString("dir")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxPayload = viper.GetInt64("maxpayload")
	cfg.Verify = viper.GetBool("verify")
	cfg.GELFAddress = viper.GetString("gelf")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	// Port only matters for server mode
	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.OutputDirectory == "" {
		return errors.New("output directory cannot be empty")
	}

	// Create the output directory if it doesn't exist
	if _, err := os.Stat(c.OutputDirectory); os.IsNotExist(err) {
		if err := os.MkdirAll(c.OutputDirectory, DefaultDirPerm); err != nil {
			return fmt.Errorf("cannot create output directory %s: %w", c.OutputDirectory, err)
		}
	} else if err != nil {
		return fmt.Errorf("cannot access output directory %s: %w", c.OutputDirectory, err)
	}

	if c.MaxPayload <= 0 {
		return errors.New("maximum payload size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, OutputDirectory: %s, LogLevel: %s, MaxPayload: %d, Verify: %t, GELF: %q}",
		c.Mode, c.Host, c.Port, c.OutputDirectory, c.LogLevel, c.MaxPayload, c.Verify, c.GELFAddress)
}

// IsServerMode returns true if the server is running in HTTP server mode
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
