//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Username   string
	Password   string
	Program    string
	ConfigID   string
	FlexvmPath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Username:   os.Getenv("FORTIFLEX_ACCESS_USERNAME"),
		Password:   os.Getenv("FORTIFLEX_ACCESS_PASSWORD"),
		Program:    os.Getenv("FLEXVM_TEST_PROGRAM"),
		ConfigID:   os.Getenv("FLEXVM_TEST_CONFIG_ID"),
		FlexvmPath: getFlexvmPath(),
		Verbose:    os.Getenv("FLEXVM_VERBOSE") == "true",
	}
}

// getFlexvmPath determines the path to the flexvm binary.
func getFlexvmPath() string {
	if path := os.Getenv("FLEXVM_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../flexvm",
		"./flexvm",
		"../flexvm",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "flexvm"
}

// SkipIfMissingConfig skips the test when credentials or the binary are missing.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Username == "" || config.Password == "" {
		t.Skip("FORTIFLEX_ACCESS_USERNAME/FORTIFLEX_ACCESS_PASSWORD not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.FlexvmPath); err != nil {
		t.Skipf("flexvm binary not found at %s, skipping integration test", config.FlexvmPath)
	}
}

// CommandRunner runs flexvm commands against a private session file.
type CommandRunner struct {
	config      *TestConfig
	t           *testing.T
	sessionPath string
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:      config,
		t:           t,
		sessionPath: filepath.Join(t.TempDir(), "session.json"),
	}
}

// Run executes a flexvm command with a persisted session and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append(args, "--persist-session", "--session-path", runner.sessionPath)

	cmd := exec.Command(runner.config.FlexvmPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.FlexvmPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// DecodeJSONOutput decodes command output produced with --output json.
func DecodeJSONOutput(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output is not a JSON object: %v\n%s", err, output)
	}

	return decoded
}
