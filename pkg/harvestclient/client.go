package harvestclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/harvest/internal/client"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// New creates a new harvest API client. The base URL loses any trailing
// slash and gets "https://" when no scheme is given. config is not modified.
func New(ctx context.Context, config *harvest.Config) (harvest.Client, error) {
	if config == nil {
		return nil, harvest.ErrConfigRequired
	}

	normalized := *config

	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)
	if normalized.BaseURL == "" {
		return nil, harvest.ErrBaseURLRequired
	}

	cli, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithPassword creates a new client for baseURL authenticating as email.
func NewWithPassword(ctx context.Context, baseURL, email, password string) (harvest.Client, error) {
	return New(ctx, &harvest.Config{
		BaseURL:  baseURL,
		Email:    email,
		Password: password,
	})
}

// NormalizeBaseURL trims surrounding space and trailing slashes and adds
// "https://" when no scheme is present. It returns "" for an empty URL.
func NormalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return ""
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
