package constants

import "errors"

// Configuration errors.
var (
	ErrNoBaseURL    = errors.New("no Harvest URL configured, set --url or HARVEST_URL")
	ErrNoEmail      = errors.New("no account email configured, set --email or HARVEST_EMAIL")
	ErrNoPassword   = errors.New("no password configured and stdin is not a terminal")
	ErrInvalidLimit = errors.New("limit must not be negative")

	ErrUnknownConfigKey = errors.New("unknown configuration key")
)

// Argument errors.
var (
	ErrInvalidParentRef = errors.New("parent must be given as KIND:ID")
	ErrInvalidFilter    = errors.New("filter must be given as KEY=VALUE")
	ErrInvalidOutput    = errors.New("output must be one of table, json, yaml")
)
