package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
	"github.com/fivetwenty-io/harvest/pkg/harvestclient"
)

// buildHarvestConfig turns the CLI configuration into a client
// configuration. The password must already be resolved.
func buildHarvestConfig(config *Config, logger harvest.Logger) (*harvest.Config, error) {
	if strings.TrimSpace(config.URL) == "" {
		return nil, constants.ErrNoBaseURL
	}

	if config.Email == "" {
		return nil, constants.ErrNoEmail
	}

	cacheConfig := &harvest.CacheConfig{Type: harvest.CacheType(config.Cache)}
	if config.NoCache {
		cacheConfig.Type = harvest.CacheTypeNone
	}

	if cacheConfig.Type == harvest.CacheTypeNATS {
		cacheConfig.NATS = &harvest.NATSKVConfig{
			URL:    config.NATSURL,
			Bucket: config.NATSBucket,
		}
	}

	return &harvest.Config{
		BaseURL:     config.URL,
		Email:       config.Email,
		Password:    config.Password,
		HTTPTimeout: config.Timeout,
		RetryMax:    config.Retries,
		Debug:       config.Verbose,
		Logger:      logger,
		Cache:       cacheConfig,
	}, nil
}

// resolvePassword prompts for the password when none is configured and stdin
// is a terminal.
func resolvePassword(config *Config) error {
	if config.Password != "" {
		return nil
	}

	stdin := int(syscall.Stdin)
	if !term.IsTerminal(stdin) {
		return constants.ErrNoPassword
	}

	fmt.Fprint(os.Stderr, "Password: ")

	bytePassword, err := term.ReadPassword(stdin)
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Fprintln(os.Stderr)

	config.Password = string(bytePassword)

	return nil
}

// createClient builds a client from the effective CLI configuration. The
// returned cleanup closes the client and flushes the logger.
func createClient(ctx context.Context) (harvest.Client, func(), error) {
	config := loadConfig()

	if strings.TrimSpace(config.URL) == "" {
		return nil, nil, constants.ErrNoBaseURL
	}

	err := resolvePassword(config)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(config.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	harvestConfig, err := buildHarvestConfig(config, logger)
	if err != nil {
		return nil, nil, err
	}

	client, err := harvestclient.New(ctx, harvestConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	cleanup := func() {
		_ = client.Close()
		logger.Sync()
	}

	return client, cleanup, nil
}
