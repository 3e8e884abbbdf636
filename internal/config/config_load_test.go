package config

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags gives every test a fresh flag set and viper instance.
func resetFlags() {
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	viper.Reset()
}

// withArgs runs a test body with os.Args replaced and the global flag state reset.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	t.Cleanup(func() {
		os.Args = original
		resetFlags()
	})
	os.Args = append([]string{"mcp-field-reports"}, args...)
	resetFlags()
}

func TestLoadFromFlags_DefaultConfig(t *testing.T) {
	withArgs(t)

	cfg, err := LoadFromFlags()
	require.NoError(t, err)

	assert.Equal(t, ModeStdio, cfg.Mode)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxPayload), cfg.MaxPayload)
	assert.True(t, cfg.Verify)
	assert.NotEmpty(t, cfg.OutputDirectory)
}

func TestLoadFromFlags_ValidFlags(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "custom output directory",
			args: []string{"--dir=" + dir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, dir, cfg.OutputDirectory)
			},
		},
		{
			name: "server mode with host and port",
			args: []string{"--mode=server", "--host=0.0.0.0", "--port=9090", "--dir=" + dir},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsServerMode())
				assert.Equal(t, "0.0.0.0:9090", cfg.Address())
			},
		},
		{
			name: "verification disabled",
			args: []string{"--verify=false", "--dir=" + dir},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Verify)
			},
		},
		{
			name: "gelf and payload limit",
			args: []string{"--gelf=graylog:12201", "--maxpayload=4096", "--dir=" + dir},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "graylog:12201", cfg.GELFAddress)
				assert.Equal(t, int64(4096), cfg.MaxPayload)
			},
		},
		{
			name: "debug logging",
			args: []string{"--loglevel=debug", "--dir=" + dir},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsDebug())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			cfg, err := LoadFromFlags()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromFlags_EnvironmentVariables(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MCP_FIELD_MODE", "server")
	t.Setenv("MCP_FIELD_PORT", "8181")
	t.Setenv("MCP_FIELD_DIR", dir)
	t.Setenv("MCP_FIELD_VERIFY", "false")
	withArgs(t)

	cfg, err := LoadFromFlags()
	require.NoError(t, err)
	assert.Equal(t, ModeServer, cfg.Mode)
	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, dir, cfg.OutputDirectory)
	assert.False(t, cfg.Verify)
}

func TestLoadFromFlags_FlagOverridesEnvironment(t *testing.T) {
	t.Setenv("MCP_FIELD_PORT", "8181")
	withArgs(t, "--mode=server", "--port=9191", "--dir="+t.TempDir())

	cfg, err := LoadFromFlags()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
}

func TestLoadFromFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"invalid mode", []string{"--mode=grpc"}},
		{"invalid port", []string{"--mode=server", "--port=0"}},
		{"invalid log level", []string{"--loglevel=trace"}},
		{"invalid payload", []string{"--maxpayload=-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, append(tt.args, "--dir="+t.TempDir())...)
			_, err := LoadFromFlags()
			assert.Error(t, err)
		})
	}
}

func TestLoadFromFlags_VersionFlag(t *testing.T) {
	withArgs(t, "--version")

	_, err := LoadFromFlags()
	assert.True(t, errors.Is(err, ErrVersionRequested))
}
