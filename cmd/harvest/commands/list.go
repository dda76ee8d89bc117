package commands

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/harvest/internal/constants"
	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

type listOptions struct {
	kind    string
	parent  string
	filters []string
	limit   int
	refresh bool
	output  string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		parent  string
		filters []string
		limit   int
		refresh bool
	)

	cmd := &cobra.Command{
		Use:     "list KIND",
		Aliases: []string{"ls"},
		Short:   "List resources of a kind",
		Long: `List the resources of a kind, optionally under a parent and filtered.

Examples:
  harvest list projects
  harvest list contacts --parent client:5
  harvest list invoices --filter client=5 --limit 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := listOptions{
				kind:    args[0],
				parent:  parent,
				filters: filters,
				limit:   limit,
				refresh: refresh,
				output:  viper.GetString("output"),
			}

			if err := validateOutput(opts.output); err != nil {
				return err
			}

			client, cleanup, err := createClient(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			return runList(cmd.Context(), cmd.OutOrStdout(), client, opts)
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent resource as KIND:ID")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "filter as KEY=VALUE (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "stop after this many results (0 for all)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")

	return cmd
}

func runList(ctx context.Context, out io.Writer, client harvest.Client, opts listOptions) error {
	if opts.limit < 0 {
		return constants.ErrInvalidLimit
	}

	params, err := parseFilters(opts.filters)
	if err != nil {
		return err
	}

	var seq iter.Seq2[*harvest.Entity, error]

	if opts.parent != "" {
		parentKind, parentID, err := parseParentRef(opts.parent)
		if err != nil {
			return err
		}

		parent, err := client.Ref(parentKind, parentID)
		if err != nil {
			return err
		}

		seq = client.ListChildren(ctx, parent, opts.kind, params, fetchOptions(opts.refresh)...)
	} else {
		seq = client.List(ctx, opts.kind, params, fetchOptions(opts.refresh)...)
	}

	var entities []*harvest.Entity

	for entity, err := range seq {
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", opts.kind, err)
		}

		entities = append(entities, entity)

		if opts.limit > 0 && len(entities) >= opts.limit {
			break
		}
	}

	return renderEntities(out, entities, opts.output)
}
