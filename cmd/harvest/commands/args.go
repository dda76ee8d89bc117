package commands

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// parseParentRef splits "KIND:ID".
func parseParentRef(ref string) (string, string, error) {
	kind, id, found := strings.Cut(ref, ":")
	kind, id = strings.TrimSpace(kind), strings.TrimSpace(id)

	if !found || kind == "" || id == "" {
		return "", "", fmt.Errorf("%w: %q", constants.ErrInvalidParentRef, ref)
	}

	return kind, id, nil
}

// parseFilters turns repeated KEY=VALUE flags into query parameters. A later
// key overrides an earlier one.
func parseFilters(filters []string) (harvest.Params, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	params := make(harvest.Params, len(filters))

	for _, filter := range filters {
		key, value, found := strings.Cut(filter, "=")
		key = strings.TrimSpace(key)

		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidFilter, filter)
		}

		params[key] = value
	}

	return params, nil
}

func fetchOptions(refresh bool) []harvest.FetchOption {
	if refresh {
		return []harvest.FetchOption{harvest.Bypass()}
	}

	return nil
}
