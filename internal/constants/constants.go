package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout bounds quick dials such as the NATS connection.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. The transport performs no retries unless configured.
const (
	// DefaultRetryMax is the number of retries performed by default.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait between opt-in retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait between opt-in retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Wire protocol.
const (
	// MediaTypeXML is sent as both Accept and Content-Type.
	MediaTypeXML = "application/xml"

	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "harvest.go"

	// HeaderAccept is the Accept header name.
	HeaderAccept = "Accept"

	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderUserAgent is the User-Agent header name.
	HeaderUserAgent = "User-Agent"
)

// Document attributes.
const (
	// TypeAttr carries the declared scalar type of an attribute node.
	TypeAttr = "type"

	// NilAttr marks an attribute node whose value is absent.
	NilAttr = "nil"
)

// Query serialization layouts.
const (
	// QueryDateTimeLayout renders datetime query values (YYYY-MM-DD HH:MM).
	QueryDateTimeLayout = "2006-01-02 15:04"

	// QueryDateLayout renders date-only query values (YYYYMMDD).
	QueryDateLayout = "20060102"

	// DateLayout renders dates for display.
	DateLayout = "2006-01-02"

	// QueryTrue is the wire form of a true boolean filter.
	QueryTrue = "yes"

	// QueryFalse is the wire form of a false boolean filter.
	QueryFalse = "no"
)

// Cache constants.
const (
	// ScopeAll is the collection scope of an unfiltered primary listing.
	ScopeAll = "all"

	// DefaultCacheShards is the number of lock shards in the memory store.
	DefaultCacheShards = 16

	// DefaultNATSBucket is the JetStream KV bucket used by the NATS store.
	DefaultNATSBucket = "harvest_cache"
)

// Format constants.
const (
	// FormatTable is the default CLI output format.
	FormatTable = "table"

	// FormatJSON renders JSON output.
	FormatJSON = "json"

	// FormatYAML renders YAML output.
	FormatYAML = "yaml"

	// YAMLIndentSize is the indent used for YAML output.
	YAMLIndentSize = 2
)

// Display constants.
const (
	// NoID is shown for entities lacking an id attribute.
	NoID = "<no id>"

	// NotAvailable is shown for missing values in tables.
	NotAvailable = "N/A"
)
