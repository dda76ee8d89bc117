package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func TestParseParentRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		kind    string
		id      string
		wantErr bool
	}{
		{name: "kind and id", ref: "project:42", kind: "project", id: "42"},
		{name: "spaces", ref: " Client : 5 ", kind: "Client", id: "5"},
		{name: "missing separator", ref: "project42", wantErr: true},
		{name: "missing id", ref: "project:", wantErr: true},
		{name: "missing kind", ref: ":42", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			kind, id, err := parseParentRef(testCase.ref)
			if testCase.wantErr {
				require.ErrorIs(t, err, constants.ErrInvalidParentRef)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testCase.kind, kind)
			assert.Equal(t, testCase.id, id)
		})
	}
}

func TestParseFilters(t *testing.T) {
	t.Parallel()

	params, err := parseFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, params)

	params, err = parseFilters([]string{"client=5", "status=open", "client=6", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, harvest.Params{"client": "6", "status": "open", "note": "a=b"}, params)

	_, err = parseFilters([]string{"client"})
	require.ErrorIs(t, err, constants.ErrInvalidFilter)

	_, err = parseFilters([]string{"=5"})
	require.ErrorIs(t, err, constants.ErrInvalidFilter)
}

func TestFetchOptions(t *testing.T) {
	t.Parallel()

	assert.Empty(t, fetchOptions(false))
	assert.True(t, harvest.ApplyFetchOptions(fetchOptions(true)).Bypass)
}
