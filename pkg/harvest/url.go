package harvest

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/harvest/internal/constants"
)

// BuildURL joins base and the stringified parts with "/", collapses doubled
// separators and appends params as a query string. A "scheme://" prefix on
// base is preserved. Identical input always yields the identical URL.
func BuildURL(base string, parts []any, params Params) string {
	segments := make([]string, 0, len(parts)+1)
	segments = append(segments, base)

	for _, part := range parts {
		segments = append(segments, pathPart(part))
	}

	joined := collapseSeparators(strings.Join(segments, "/"))

	query := EncodeParams(params)
	if query == "" {
		return joined
	}

	return joined + "?" + query
}

// BuildPath is BuildURL without query parameters.
func BuildPath(base string, parts ...any) string {
	return BuildURL(base, parts, nil)
}

// EncodeParams serializes params as a percent-encoded query string sorted
// by key. It returns "" for empty params.
func EncodeParams(params Params) string {
	if len(params) == 0 {
		return ""
	}

	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, QueryValue(value))
	}

	return values.Encode()
}

// QueryValue renders a single query parameter value.
func QueryValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(constants.QueryDateTimeLayout)
	case *time.Time:
		if v == nil {
			return ""
		}

		return v.Format(constants.QueryDateTimeLayout)
	case Date:
		return v.Format(constants.QueryDateLayout)
	case bool:
		if v {
			return constants.QueryTrue
		}

		return constants.QueryFalse
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// NormalizeParams strips leading underscores from every key, which lets
// callers pass reserved words such as "_from". It returns nil for empty
// params.
func NormalizeParams(params Params) Params {
	if len(params) == 0 {
		return nil
	}

	normalized := make(Params, len(params))
	for key, value := range params {
		normalized[strings.TrimLeft(key, "_")] = value
	}

	return normalized
}

func pathPart(part any) string {
	switch v := part.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func collapseSeparators(joined string) string {
	prefix := ""

	if idx := strings.Index(joined, "://"); idx >= 0 {
		prefix, joined = joined[:idx+len("://")], joined[idx+len("://"):]
	}

	for strings.Contains(joined, "//") {
		joined = strings.ReplaceAll(joined, "//", "/")
	}

	return prefix + joined
}
