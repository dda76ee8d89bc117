package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/harvest/cmd/harvest/commands"
	"github.com/fivetwenty-io/harvest/internal/constants"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest time tracking CLI",
	Long: `A command-line interface for reading a Harvest account.

Every resource kind (clients, projects, day entries, invoices, ...) can be
fetched by id or listed, directly or through its parent resource.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.harvest/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "Harvest account URL")
	rootCmd.PersistentFlags().StringP("email", "e", "", "account email")
	rootCmd.PersistentFlags().String("password", "", "account password (prompted when omitted)")
	rootCmd.PersistentFlags().StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Bool("no-cache", false, "disable the response cache")
	rootCmd.PersistentFlags().String("cache", "memory", "cache backend (memory, nats, none)")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server URL for the nats cache backend")
	rootCmd.PersistentFlags().String("nats-bucket", constants.DefaultNATSBucket, "NATS KV bucket for the nats cache backend")
	rootCmd.PersistentFlags().Int("retries", constants.DefaultRetryMax, "retries for transient failures")
	rootCmd.PersistentFlags().Duration("timeout", constants.DefaultHTTPTimeout, "timeout of a single request")

	// Bind flags to viper
	for _, name := range []string{
		"config", "url", "email", "password", "output", "verbose", "no-cache",
		"cache", "nats-url", "nats-bucket", "retries", "timeout",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewKindsCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewListCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.harvest/config.yml
		viper.AddConfigPath(filepath.Join(home, ".harvest"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("HARVEST")
	viper.AutomaticEnv()
	commands.BindLegacyEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
