package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp(t *testing.T) {
	setupTestEnv(t)

	for _, flag := range []string{"--help", "-h"} {
		t.Run(flag, func(t *testing.T) {
			res := runCLI(t, flag)
			assert.Equal(t, ExitOK, res.code)
			assert.Contains(t, res.stdout, "Usage:")
			assert.Contains(t, res.stdout, "go-cli-template")
			assert.Contains(t, res.stdout, "greet")
			assert.Empty(t, res.stderr)
		})
	}
}

func TestVersionFlag(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "--version")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "0.1.0\n", res.stdout)
	assert.Empty(t, res.stderr)
}

func TestVersionFlagHonoursLdflags(t *testing.T) {
	setupTestEnv(t)

	res := runBuild(t, BuildInfo{Version: "v1.4.2"}, "--version")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "1.4.2\n", res.stdout)
}

func TestNoArguments(t *testing.T) {
	setupTestEnv(t)

	for _, args := range [][]string{nil, {"--json"}} {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			res := runCLI(t, args...)
			assert.Equal(t, ExitUsage, res.code)
			assert.Contains(t, res.stderr, "Usage:")
			assert.Empty(t, res.stdout)
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "nonexistent")
	assert.Equal(t, ExitUsage, res.code)
	assert.Equal(t, "error: unknown command 'nonexistent'\nRun '--help' for usage information.\n", res.stderr)
	assert.Empty(t, res.stdout)
}

func TestUnknownFlag(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "--bogus")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "error: unknown flag: --bogus")
	assert.Contains(t, res.stderr, "'--help'")
}

func TestInvalidLogLevelFlag(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "--log-level", "loud", "greet", "World")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, `invalid log level "loud"`)
	assert.Empty(t, res.stdout)
}

func TestInvalidLogLevelFromConfigIsRuntimeError(t *testing.T) {
	dir := setupTestEnv(t)
	writeConfigFile(t, dir, "log_level: loud\n")

	res := runCLI(t, "greet", "World")
	assert.Equal(t, ExitRuntime, res.code)
	assert.Contains(t, res.stderr, "configuring logger")
}

func TestDebugLogsGoToStderr(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "--log-level", "debug", "greet", "World")
	assert.Equal(t, ExitOK, res.code)
	assert.Equal(t, "Hello, World!\n", res.stdout)
	assert.Contains(t, res.stderr, "dispatching command")
	assert.Contains(t, res.stderr, "go-cli-template greet")
}

func TestMalformedConfigFails(t *testing.T) {
	dir := setupTestEnv(t)
	writeConfigFile(t, dir, "greeting: [unterminated\n")

	res := runCLI(t, "greet", "World")
	assert.Equal(t, ExitRuntime, res.code)
	assert.Contains(t, res.stderr, "error: reading config file")
	assert.Empty(t, res.stdout)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"usage", &ExitError{Code: ExitUsage, Err: errNoCommand}, ExitUsage},
		{"wrapped", fmt.Errorf("outer: %w", &ExitError{Code: ExitUsage, Err: errNoCommand}), ExitUsage},
		{"plain", errors.New("boom"), ExitRuntime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestNewRootCmdRegistersCommands(t *testing.T) {
	setupTestEnv(t)

	root := NewRootCmd(testBuild, nil, nil)
	for _, name := range []string{"greet", "version", "config"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}

	greet, _, err := root.Find([]string{"greet"})
	require.NoError(t, err)
	assert.Equal(t, "Greet someone by name", greet.Short)
}

func TestFallbackIgnoresBrokenSettings(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, dir string)
	}{
		{"malformed config file", func(t *testing.T, dir string) {
			writeConfigFile(t, dir, "greeting: [unterminated\n")
		}},
		{"invalid log level in environment", func(t *testing.T, dir string) {
			t.Setenv(branding.EnvVar("log_level"), "loud")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupTestEnv(t)
			tt.prepare(t, dir)

			res := runCLI(t)
			assert.Equal(t, ExitUsage, res.code)
			assert.True(t, strings.HasPrefix(res.stderr, "Usage:"), "stderr: %q", res.stderr)
			assert.Empty(t, res.stdout)

			res = runCLI(t, "nonexistent")
			assert.Equal(t, ExitUsage, res.code)
			assert.Equal(t, "error: unknown command 'nonexistent'\nRun '--help' for usage information.\n", res.stderr)
			assert.Empty(t, res.stdout)
		})
	}
}

func TestHelpCommand(t *testing.T) {
	setupTestEnv(t)

	res := runCLI(t, "help", "greet")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "greet <name>")
	assert.Empty(t, res.stderr)

	res = runCLI(t, "help")
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "Usage:")

	res = runCLI(t, "help", "nonexistent")
	assert.Equal(t, ExitUsage, res.code)
	assert.Equal(t, "error: unknown command 'nonexistent'\nRun '--help' for usage information.\n", res.stderr)
	assert.Empty(t, res.stdout)
}
