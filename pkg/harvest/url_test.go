package harvest_test

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		parts    []any
		params   harvest.Params
		expected string
	}{
		{"base only", "/projects", nil, nil, "/projects"},
		{"item", "/projects", []any{42}, nil, "/projects/42"},
		{"nested", "/clients", []any{int64(5), "/contacts", 3}, nil, "/clients/5/contacts/3"},
		{"scheme preserved", "https://acme.harvestapp.com/", []any{"/daily/show", 9}, nil, "https://acme.harvestapp.com/daily/show/9"},
		{"plain params", "/projects", nil, harvest.Params{"x": 1, "y": true}, "/projects?x=1&y=yes"},
		{"false param", "/tasks", nil, harvest.Params{"active": false}, "/tasks?active=no"},
		{"date param", "/daily", nil, harvest.Params{"from": harvest.NewDate(2024, time.January, 5)}, "/daily?from=20240105"},
		{"empty params", "/people", nil, harvest.Params{}, "/people"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, harvest.BuildURL(testCase.base, testCase.parts, testCase.params))
		})
	}
}

func TestBuildURL_RoundTrip(t *testing.T) {
	t.Parallel()

	built := harvest.BuildURL("/projects", []any{7, "entries"}, harvest.Params{
		"from":          harvest.NewDate(2024, time.January, 5),
		"to":            harvest.NewDate(2024, time.January, 31),
		"updated_since": time.Date(2024, time.January, 5, 13, 4, 59, 0, time.UTC),
		"billable":      true,
		"user_id":       12,
	})

	path, rawQuery, found := strings.Cut(built, "?")
	require.True(t, found)
	assert.Equal(t, "/projects/7/entries", path)

	query, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "20240105", query.Get("from"))
	assert.Equal(t, "20240131", query.Get("to"))
	assert.Equal(t, "2024-01-05 13:04", query.Get("updated_since"))
	assert.Equal(t, "yes", query.Get("billable"))
	assert.Equal(t, "12", query.Get("user_id"))
}

func TestBuildURL_Deterministic(t *testing.T) {
	t.Parallel()

	params := harvest.Params{"b": 2, "a": 1, "c": "three"}
	first := harvest.BuildURL("/invoices", nil, params)

	for range 10 {
		assert.Equal(t, first, harvest.BuildURL("/invoices", nil, params))
	}

	assert.Equal(t, "/invoices?a=1&b=2&c=three", first)
}

func TestQueryValue(t *testing.T) {
	t.Parallel()

	stamp := time.Date(2023, time.December, 31, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "", harvest.QueryValue(nil))
	assert.Equal(t, "text", harvest.QueryValue("text"))
	assert.Equal(t, "2023-12-31 23:59", harvest.QueryValue(stamp))
	assert.Equal(t, "2023-12-31 23:59", harvest.QueryValue(&stamp))
	assert.Equal(t, "20231231", harvest.QueryValue(harvest.DateOf(stamp)))
	assert.Equal(t, "no", harvest.QueryValue(false))
	assert.Equal(t, "1.25", harvest.QueryValue(1.25))
}

func TestNormalizeParams(t *testing.T) {
	t.Parallel()

	assert.Nil(t, harvest.NormalizeParams(nil))
	assert.Nil(t, harvest.NormalizeParams(harvest.Params{}))

	normalized := harvest.NormalizeParams(harvest.Params{"_from": 1, "to": 2, "__type": "x"})
	assert.Equal(t, harvest.Params{"from": 1, "to": 2, "type": "x"}, normalized)
}
