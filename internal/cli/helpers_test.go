package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/clitemplate/go-cli-template/internal/branding"
	"github.com/clitemplate/go-cli-template/internal/config"
)

var testBuild = BuildInfo{Version: "dev", Commit: "abc1234", Date: "2026-01-02"}

// result is the observable outcome of one CLI invocation.
type result struct {
	stdout string
	stderr string
	code   int
}

// runCLI executes the command tree in-process with the given arguments.
func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	return runBuild(t, testBuild, args...)
}

func runBuild(t *testing.T, build BuildInfo, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(build, args, &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: ExitCode(err)}
}

// setupTestEnv sandboxes the config directory and clears environment
// overrides so the host's settings cannot leak into a test.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(branding.EnvVar("HOME"), dir)
	for _, key := range config.Keys() {
		t.Setenv(branding.EnvVar(key), "")
	}
	return dir
}

// writeConfigFile writes content to config.yaml inside dir.
func writeConfigFile(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}
