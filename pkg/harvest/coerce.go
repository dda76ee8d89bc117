package harvest

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// AttrType is the declared scalar type of an attribute node.
type AttrType string

// Declared types understood by the coercion engine. Any other type name
// (including the empty one) leaves the raw text unchanged.
const (
	TypeNone     AttrType = ""
	TypeString   AttrType = "string"
	TypeInteger  AttrType = "integer"
	TypeFloat    AttrType = "float"
	TypeDecimal  AttrType = "decimal"
	TypeDateTime AttrType = "datetime"
	TypeDate     AttrType = "date"
	TypeBoolean  AttrType = "boolean"
)

type converter struct {
	parse func(raw string) (any, error)
	zero  any
}

var converters = map[AttrType]converter{
	TypeString: {
		parse: func(raw string) (any, error) { return raw, nil },
		zero:  "",
	},
	TypeInteger: {
		parse: func(raw string) (any, error) {
			return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		},
		zero: int64(0),
	},
	TypeFloat: {
		parse: func(raw string) (any, error) {
			return strconv.ParseFloat(strings.TrimSpace(raw), 64)
		},
		zero: float64(0),
	},
	TypeDecimal: {
		parse: func(raw string) (any, error) {
			return decimal.NewFromString(strings.TrimSpace(raw))
		},
		zero: decimal.Zero,
	},
	TypeDateTime: {
		parse: func(raw string) (any, error) {
			return dateparse.ParseIn(strings.TrimSpace(raw), time.UTC)
		},
		zero: time.Time{},
	},
	TypeDate: {
		parse: func(raw string) (any, error) {
			t, err := dateparse.ParseIn(strings.TrimSpace(raw), time.UTC)
			if err != nil {
				return nil, err
			}

			return DateOf(t), nil
		},
		zero: Date{},
	},
	TypeBoolean: {
		parse: func(raw string) (any, error) {
			return strconv.ParseBool(strings.TrimSpace(raw))
		},
		zero: false,
	},
}

// Known reports whether typ has a registered constructor.
func Known(typ AttrType) bool {
	_, ok := converters[typ]

	return ok
}

// ZeroValue returns the fallback value of typ, or nil for unknown types.
func ZeroValue(typ AttrType) any {
	conv, ok := converters[typ]
	if !ok {
		return nil
	}

	return conv.zero
}

// Coerce converts raw to the Go value of typ. A value that cannot be
// constructed degrades to the zero value of typ; an unknown typ returns raw.
func Coerce(typ AttrType, raw string) any {
	value, _ := CoerceStrict(typ, raw)

	return value
}

// CoerceStrict is Coerce with failures reported. On failure it still returns
// the zero value of typ alongside a *CoercionError.
func CoerceStrict(typ AttrType, raw string) (any, error) {
	conv, ok := converters[typ]
	if !ok {
		return raw, nil
	}

	value, err := conv.parse(raw)
	if err != nil {
		return conv.zero, &CoercionError{Type: typ, Raw: raw, Err: err}
	}

	return value, nil
}
