//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	URL        string
	Email      string
	Password   string
	HarvestBin string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		URL:        os.Getenv("HARVEST_URL"),
		Email:      os.Getenv("HARVEST_EMAIL"),
		Password:   os.Getenv("HARVEST_PASSWORD"),
		HarvestBin: getHarvestPath(),
		Verbose:    os.Getenv("HARVEST_VERBOSE") == "true",
	}
}

// getHarvestPath determines the path to the harvest binary.
func getHarvestPath() string {
	if path := os.Getenv("HARVEST_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../harvest",
		"./harvest",
		"../harvest",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "harvest"
}

// SkipIfMissingConfig skips the test unless an account and a binary are
// available.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" || config.Email == "" || config.Password == "" {
		t.Skip("HARVEST_URL, HARVEST_EMAIL or HARVEST_PASSWORD not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.HarvestBin); err != nil {
		t.Skipf("harvest binary not found at %s, skipping integration test", config.HarvestBin)
	}
}

// CommandRunner runs harvest commands against the configured account.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a harvest command and returns its output. Credentials are
// passed through the environment.
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	cmd := exec.Command(runner.config.HarvestBin, args...)
	cmd.Env = append(os.Environ(),
		"HARVEST_URL="+runner.config.URL,
		"HARVEST_EMAIL="+runner.config.Email,
		"HARVEST_PASSWORD="+runner.config.Password,
	)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.HarvestBin, strings.Join(args, " "))
	}

	err := cmd.Run()
	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a harvest command with JSON output and decodes it into
// target.
func (runner *CommandRunner) RunJSON(target interface{}, args ...string) error {
	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	if err != nil {
		runner.t.Logf("Stderr: %s", stderr)

		return err
	}

	return json.Unmarshal([]byte(stdout), target)
}

// AssertYAMLOutput verifies command output looks like YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
