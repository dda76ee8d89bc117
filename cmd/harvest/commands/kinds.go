package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

// KindInfo describes a registered kind for display.
type KindInfo struct {
	Name        string   `json:"name"                 yaml:"name"`
	ElementName string   `json:"element_name"         yaml:"element_name"`
	PluralName  string   `json:"plural_name"          yaml:"plural_name"`
	BasePath    string   `json:"base_path"            yaml:"base_path"`
	FetchPath   string   `json:"fetch_path"           yaml:"fetch_path"`
	Parents     []string `json:"parents,omitempty"    yaml:"parents,omitempty"`
	Primary     bool     `json:"primary"              yaml:"primary"`
	Children    []string `json:"children,omitempty"   yaml:"children,omitempty"`
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List resource kinds",
		Long:  "List every resource kind with its paths and parent kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := viper.GetString("output")
			if err := validateOutput(output); err != nil {
				return err
			}

			return runKinds(cmd.OutOrStdout(), harvest.DefaultRegistry(), output)
		},
	}
}

func describeKinds(registry *harvest.Registry) []KindInfo {
	kinds := registry.Kinds()
	infos := make([]KindInfo, 0, len(kinds))

	for _, desc := range kinds {
		var children []string
		for _, child := range registry.Children(desc.Name()) {
			children = append(children, child.Name())
		}

		infos = append(infos, KindInfo{
			Name:        desc.Name(),
			ElementName: desc.ElementName(),
			PluralName:  desc.PluralName(),
			BasePath:    desc.BasePath(),
			FetchPath:   desc.FetchPath(),
			Parents:     desc.Parents(),
			Primary:     desc.Primary(),
			Children:    children,
		})
	}

	return infos
}

func runKinds(out io.Writer, registry *harvest.Registry, output string) error {
	infos := describeKinds(registry)

	if done, err := encode(out, infos, output); done {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.Header("Kind", "Element", "Path", "Fetch Path", "Parents", "Primary")

	for _, info := range infos {
		_ = table.Append(
			info.Name,
			info.ElementName,
			info.BasePath,
			info.FetchPath,
			valueOrNA(strings.Join(info.Parents, ", ")),
			fmt.Sprintf("%t", info.Primary),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
