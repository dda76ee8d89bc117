package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func testEntity(t *testing.T, kind string, nodes ...harvest.Node) *harvest.Entity {
	t.Helper()

	attrs := make([]harvest.Attribute, 0, len(nodes))

	for _, node := range nodes {
		attr, err := harvest.AttributeOf(node)
		require.NoError(t, err)

		attrs = append(attrs, attr)
	}

	return harvest.NewEntity(kind, attrs...)
}

func TestValidateOutput(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"table", "json", "yaml"} {
		require.NoError(t, validateOutput(format))
	}

	require.ErrorIs(t, validateOutput("xml"), constants.ErrInvalidOutput)
}

func TestRenderEntity(t *testing.T) {
	t.Parallel()

	entity := testEntity(t, harvest.KindProject,
		harvest.Node{Tag: "id", Type: harvest.TypeInteger, Text: "42"},
		harvest.Node{Tag: "name", Text: "Website"},
		harvest.Node{Tag: "client-id", Type: harvest.TypeInteger, Nil: true},
	)

	t.Run("table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntity(&buf, entity, constants.FormatTable))

		output := buf.String()
		assert.Contains(t, output, "Attribute")
		assert.Contains(t, output, "Website")
		assert.Contains(t, output, "integer")
		assert.Contains(t, output, "client_id")
		assert.Contains(t, output, constants.NotAvailable)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntity(&buf, entity, constants.FormatJSON))
		assert.JSONEq(t, `{"id":42,"name":"Website","client_id":null}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntity(&buf, entity, constants.FormatYAML))
		assert.Equal(t, "id: 42\nname: Website\nclient_id: null\n", buf.String())
	})
}

func TestRenderEntities(t *testing.T) {
	t.Parallel()

	first := testEntity(t, harvest.KindContact,
		harvest.Node{Tag: "id", Type: harvest.TypeInteger, Text: "1"},
		harvest.Node{Tag: "first-name", Text: "Ada"},
	)
	second := testEntity(t, harvest.KindContact,
		harvest.Node{Tag: "id", Type: harvest.TypeInteger, Text: "2"},
		harvest.Node{Tag: "email", Text: "grace@example.com"},
	)

	t.Run("table uses the union of attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntities(&buf, []*harvest.Entity{first, second}, constants.FormatTable))

		output := buf.String()
		assert.Contains(t, output, "first_name")
		assert.NotContains(t, output, "FIRST NAME")
		assert.Contains(t, output, "email")
		assert.Contains(t, output, "grace@example.com")
		assert.Contains(t, output, "Ada")
		assert.Equal(t, 2, strings.Count(buf.String(), constants.NotAvailable))
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntities(&buf, []*harvest.Entity{first, second}, constants.FormatJSON))
		assert.JSONEq(t, `[{"id":1,"first_name":"Ada"},{"id":2,"email":"grace@example.com"}]`, buf.String())
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntities(&buf, nil, constants.FormatTable))
		assert.Equal(t, "No results found\n", buf.String())
	})

	t.Run("empty json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, renderEntities(&buf, nil, constants.FormatJSON))
		assert.JSONEq(t, `[]`, buf.String())
	})
}
