package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

const maskedPassword = "********"

// Config represents the CLI configuration.
type Config struct {
	URL        string        `json:"url"         yaml:"url"`
	Email      string        `json:"email"       yaml:"email"`
	Password   string        `json:"password"    yaml:"password"`
	Output     string        `json:"output"      yaml:"output"`
	Verbose    bool          `json:"verbose"     yaml:"verbose"`
	NoCache    bool          `json:"no_cache"    yaml:"no_cache"`
	Cache      string        `json:"cache"       yaml:"cache"`
	NATSURL    string        `json:"nats_url"    yaml:"nats_url"`
	NATSBucket string        `json:"nats_bucket" yaml:"nats_bucket"`
	Retries    int           `json:"retries"     yaml:"retries"`
	Timeout    time.Duration `json:"timeout"     yaml:"timeout"`
}

// BindLegacyEnv maps the unprefixed lowercase variables (harvest_url,
// harvest_user, harvest_pwd) onto the url, email and password keys. The
// HARVEST_-prefixed names take precedence.
func BindLegacyEnv() {
	_ = viper.BindEnv("url", "HARVEST_URL", "harvest_url")
	_ = viper.BindEnv("email", "HARVEST_EMAIL", "harvest_user")
	_ = viper.BindEnv("password", "HARVEST_PASSWORD", "harvest_pwd")
}

// loadConfig reads the effective configuration from flags, environment and
// the config file.
func loadConfig() *Config {
	return &Config{
		URL:        viper.GetString("url"),
		Email:      viper.GetString("email"),
		Password:   viper.GetString("password"),
		Output:     viper.GetString("output"),
		Verbose:    viper.GetBool("verbose"),
		NoCache:    viper.GetBool("no-cache"),
		Cache:      viper.GetString("cache"),
		NATSURL:    viper.GetString("nats-url"),
		NATSBucket: viper.GetString("nats-bucket"),
		Retries:    viper.GetInt("retries"),
		Timeout:    viper.GetDuration("timeout"),
	}
}

// Masked returns a copy safe to display.
func (c *Config) Masked() *Config {
	masked := *c
	if masked.Password != "" {
		masked.Password = maskedPassword
	}

	return &masked
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and edit the Harvest CLI configuration file",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration with the password masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.OutOrStdout(), loadConfig().Masked(), viper.GetString("output"))
		},
	}
}

func showConfig(out io.Writer, config *Config, output string) error {
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return encoder.Encode(config)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.YAMLIndentSize)

		return encoder.Encode(config)
	default:
		table := tablewriter.NewWriter(out)
		table.Header("Property", "Value")
		_ = table.Append("URL", valueOrNA(config.URL))
		_ = table.Append("Email", valueOrNA(config.Email))
		_ = table.Append("Password", valueOrNA(config.Password))
		_ = table.Append("Output", config.Output)
		_ = table.Append("Cache", config.Cache)
		_ = table.Append("No Cache", fmt.Sprintf("%t", config.NoCache))
		_ = table.Append("NATS URL", valueOrNA(config.NATSURL))
		_ = table.Append("NATS Bucket", config.NATSBucket)
		_ = table.Append("Retries", fmt.Sprintf("%d", config.Retries))
		_ = table.Append("Timeout", config.Timeout.String())

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

var settableKeys = map[string]bool{
	"url": true, "email": true, "output": true, "cache": true,
	"nats-url": true, "nats-bucket": true, "retries": true, "timeout": true,
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Persist a configuration value to the config file. Passwords are never stored.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !settableKeys[key] {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			viper.Set(key, value)

			configFile, err := configFilePath()
			if err != nil {
				return err
			}

			err = viper.WriteConfigAs(configFile)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			err = os.Chmod(configFile, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("failed to restrict config permissions: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, configFile)

			return nil
		},
	}
}

func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".harvest")

	err = os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.yml"), nil
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
