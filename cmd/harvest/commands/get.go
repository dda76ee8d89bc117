package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

type getOptions struct {
	kind    string
	id      string
	parent  string
	refresh bool
	output  string
}

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var (
		parent  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "get KIND ID",
		Short: "Get a resource by id",
		Long: `Fetch a single resource by kind and id.

Nested kinds are fetched through their parent, e.g.
  harvest get user_assignment 7 --parent project:42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := getOptions{
				kind:    args[0],
				id:      args[1],
				parent:  parent,
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

			return runGet(cmd.Context(), cmd.OutOrStdout(), client, opts)
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent resource as KIND:ID")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cache")

	return cmd
}

func runGet(ctx context.Context, out io.Writer, client harvest.Client, opts getOptions) error {
	var (
		entity *harvest.Entity
		err    error
	)

	if opts.parent != "" {
		parentKind, parentID, parseErr := parseParentRef(opts.parent)
		if parseErr != nil {
			return parseErr
		}

		parent, refErr := client.Ref(parentKind, parentID)
		if refErr != nil {
			return refErr
		}

		entity, err = client.GetChild(ctx, parent, opts.kind, opts.id, fetchOptions(opts.refresh)...)
	} else {
		entity, err = client.Get(ctx, opts.kind, opts.id, fetchOptions(opts.refresh)...)
	}

	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", opts.kind, opts.id, err)
	}

	return renderEntity(out, entity, opts.output)
}
