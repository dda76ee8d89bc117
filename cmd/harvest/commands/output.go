package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

func validateOutput(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, format)
	}
}

// encode writes value as JSON or YAML. It reports false for the table format.
func encode(out io.Writer, value interface{}, format string) (bool, error) {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")

		return true, encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(constants.YAMLIndentSize)

		err := encoder.Encode(value)
		if err != nil {
			return true, err
		}

		return true, encoder.Close()
	default:
		return false, nil
	}
}

// newTable returns a table that prints headers verbatim, so attribute
// columns keep the names accepted by --filter.
func newTable(out io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(out, tablewriter.WithHeaderAutoFormat(tw.Off))
}

// renderEntity prints one entity; the table form lists one attribute per row.
func renderEntity(out io.Writer, entity *harvest.Entity, format string) error {
	if done, err := encode(out, entity, format); done {
		return err
	}

	table := newTable(out)
	table.Header("Attribute", "Value", "Type")

	for _, attr := range entity.Attributes() {
		value := harvest.FormatValue(attr.Value)
		if attr.Nil {
			value = constants.NotAvailable
		}

		_ = table.Append(attr.Name, value, string(attr.Type))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderEntities prints a listing; the table columns are the attribute names
// in first-seen order across all entities.
func renderEntities(out io.Writer, entities []*harvest.Entity, format string) error {
	if entities == nil {
		entities = []*harvest.Entity{}
	}

	if done, err := encode(out, entities, format); done {
		return err
	}

	if len(entities) == 0 {
		_, _ = fmt.Fprintln(out, "No results found")

		return nil
	}

	var columns []string

	seen := make(map[string]bool)

	for _, entity := range entities {
		for _, name := range entity.Names() {
			if !seen[name] {
				seen[name] = true
				columns = append(columns, name)
			}
		}
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}

	table := newTable(out)
	table.Header(header...)

	for _, entity := range entities {
		row := make([]any, len(columns))

		for i, column := range columns {
			if entity.Has(column) {
				row[i] = entity.Text(column)
			} else {
				row[i] = constants.NotAvailable
			}
		}

		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
