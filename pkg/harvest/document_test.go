package harvest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

const projectsXML = `<?xml version="1.0" encoding="UTF-8"?>
<projects>
  <project>
    <id type="integer">1</id>
    <name>Website</name>
    <client-id type="integer" nil="true"></client-id>
  </project>
  <project>
    <id type="integer">2</id>
    <name>Mobile App</name>
    <client-id type="integer">5</client-id>
  </project>
</projects>`

func TestParseDocument(t *testing.T) {
	t.Parallel()

	doc, err := harvest.ParseDocument([]byte(projectsXML))
	require.NoError(t, err)

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "projects", root.Tag())

	projects := doc.Elements("project")
	require.Len(t, projects, 2)

	nodes := projects[0].Nodes()
	require.Len(t, nodes, 4)

	assert.Equal(t, "project", nodes[0].Tag)
	assert.Equal(t, harvest.Node{Tag: "id", Type: harvest.TypeInteger, Text: "1"}, nodes[1])
	assert.Equal(t, harvest.Node{Tag: "name", Text: "Website"}, nodes[2])
	assert.Equal(t, harvest.Node{Tag: "client-id", Type: harvest.TypeInteger, Nil: true}, nodes[3])
}

func TestDocument_ElementsIncludesRoot(t *testing.T) {
	t.Parallel()

	doc, err := harvest.ParseDocument([]byte(`<project><id type="integer">42</id><name>Website</name></project>`))
	require.NoError(t, err)

	projects := doc.Elements("project")
	require.Len(t, projects, 1)
	assert.Equal(t, "project", projects[0].Tag())

	assert.Empty(t, doc.Elements("task"))
}

func TestDocument_NestedElements(t *testing.T) {
	t.Parallel()

	doc, err := harvest.ParseDocument([]byte(`<daily><day_entries><day_entry><id>1</id></day_entry></day_entries>` +
		`<projects><project><id>9</id></project></projects></daily>`))
	require.NoError(t, err)

	entries := doc.Elements("day_entry")
	require.Len(t, entries, 1)
	assert.Equal(t, "1", entries[0].Nodes()[1].Text)
}

func TestParseDocument_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"unterminated", `<projects><project>`},
		{"not xml", `this is not xml <`},
		{"empty", ``},
		{"whitespace", "  \n"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := harvest.ParseDocument([]byte(testCase.body))
			require.Error(t, err)
		})
	}
}

func TestEmptyDocument(t *testing.T) {
	t.Parallel()

	doc := harvest.EmptyDocument()
	assert.Nil(t, doc.Root())
	assert.Empty(t, doc.Elements("project"))
}
