package cli

import (
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	nio "github.com/matzehuels/neoscope/pkg/io"
	"github.com/matzehuels/neoscope/pkg/neo"
	"github.com/matzehuels/neoscope/pkg/views"
)

func (c *CLI) viewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the chart views",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			annotationNoConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			charts := views.Catalog()
			return c.emit(cmd.OutOrStdout(), charts, func() string { return catalogTable(charts) })
		},
	}
}

// viewCommand prints the data behind one chart. Views have no table form,
// so table output falls back to JSON.
func (c *CLI) viewCommand() *cobra.Command {
	cmd := c.datasetCommand(&cobra.Command{
		Use:   "view <id>",
		Short: "Build the data for one chart view",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			charts := views.Catalog()
			ids := make([]string, len(charts))
			for i, ch := range charts {
				ids[i] = ch.ID + "\t" + ch.Subtitle
			}
			return ids, cobra.ShellCompDirectiveNoFileComp
		},
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		v, err := views.Build(args[0], ds)
		if err != nil {
			return err
		}
		if c.isTable() {
			return nio.Write(cmd.OutOrStdout(), nio.FormatJSON, v)
		}
		return c.emit(cmd.OutOrStdout(), v, nil)
	})
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if _, ok := views.Lookup(args[0]); !ok {
			return errs.New(errs.ErrCodeNotFound, "unknown view %q (see neoscope views)", args[0])
		}
		return nil
	}
	return cmd
}
