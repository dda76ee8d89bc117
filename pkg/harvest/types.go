package harvest

import (
	"time"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a harvest.Client.
//
// Credentials are sent as HTTP Basic authentication on every request. Their
// sourcing (environment, prompt, file) is left to the caller.
//
// # Timeouts and retries
//
// Per-request deadlines should be controlled through the context passed to
// client methods. HTTPTimeout bounds every single request. The transport
// performs exactly one attempt unless RetryMax is set.
type Config struct {
	// BaseURL is the account URL (e.g., "https://acme.harvestapp.com").
	// harvestclient.New trims a trailing slash and adds "https://" if no
	// scheme is present.
	BaseURL string
	// Email is the account email used for Basic authentication.
	Email string
	// Password is the account password used for Basic authentication.
	Password string

	// UserAgent overrides the default client identifier.
	UserAgent string
	// HTTPTimeout bounds a single request. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax enables retries for transient failures (>=500, 429 and
	// connection errors). Zero means a single attempt.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger is an optional structured logger.
	Logger Logger

	// StrictCoercion makes malformed typed values fail the fetch with a
	// CoercionError instead of degrading to the zero value.
	StrictCoercion bool

	// Cache selects the cache backend. If nil, an in-memory store is used.
	Cache *CacheConfig
	// Store injects a ready-made cache store and takes precedence over Cache.
	Store Store
	// Metrics is an optional Prometheus collector.
	Metrics *MetricsCollector
	// Registry overrides the kind registry. If nil, DefaultRegistry is used.
	Registry *Registry
}

// Params are query parameters (filters) for collection fetches.
//
// Values are serialized by type: time.Time as "YYYY-MM-DD HH:MM", Date as
// "YYYYMMDD", bool as "yes"/"no", anything else by its string form. A leading
// underscore in a key is stripped, so "_from" sends the reserved word "from".
type Params map[string]any

// FetchOptions holds per-call fetch settings.
type FetchOptions struct {
	// Bypass skips the cache lookup and overwrites the cached entry.
	Bypass bool
}

// FetchOption configures a single fetch call.
type FetchOption func(*FetchOptions)

// Bypass forces a refetch that overwrites any cached entry.
func Bypass() FetchOption {
	return func(o *FetchOptions) {
		o.Bypass = true
	}
}

// ApplyFetchOptions folds opts into a FetchOptions value.
func ApplyFetchOptions(opts []FetchOption) FetchOptions {
	var options FetchOptions

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	return options
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the normalized date for year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the date on which t falls in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return Date{Year: year, Month: month, Day: day}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Format formats d with a time.Time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// String renders d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.Format(constants.DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
