package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/archive"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	nio "github.com/matzehuels/neoscope/pkg/io"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// archiveCommand inspects snapshots saved by "neoscope serve".
func (c *CLI) archiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect archived snapshots in MongoDB",
	}
	cmd.AddCommand(c.archiveListCommand())
	cmd.AddCommand(c.archiveExportCommand())
	return cmd
}

// openArchive connects using the configured URI.
func (c *CLI) openArchive(ctx context.Context) (*archive.Mongo, error) {
	if c.config.Mongo.URI == "" {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no archive configured (set [mongo] uri or NEOSCOPE_MONGO_URI)")
	}
	return archive.Open(ctx, c.config.Mongo.URI, c.config.Mongo.Database)
}

func (c *CLI) archiveListCommand() *cobra.Command {
	var limit int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			arch, err := c.openArchive(ctx)
			if err != nil {
				return err
			}
			defer arch.Close(context.WithoutCancel(ctx))

			metas, err := arch.List(ctx, limit)
			if err != nil {
				return err
			}
			return c.emit(cmd.OutOrStdout(), metas, func() string { return snapshotTable(metas) })
		},
	}
	cmd.Flags().Int64VarP(&limit, "limit", "n", 20, "maximum snapshots to list")
	return cmd
}

func (c *CLI) archiveExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export [snapshot-id]",
		Short: "Write an archived snapshot to a file (latest when no ID is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			arch, err := c.openArchive(ctx)
			if err != nil {
				return err
			}
			defer arch.Close(context.WithoutCancel(ctx))

			var ds *neo.Dataset
			if len(args) == 1 {
				ds, err = arch.Get(ctx, args[0])
			} else {
				ds, err = arch.Latest(ctx)
			}
			if err != nil {
				return err
			}

			if output == "" {
				return nio.WriteSnapshot(cmd.OutOrStdout(), nio.FormatJSON, ds)
			}
			if err := nio.ExportSnapshot(ds, output); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Exported snapshot %s (%d observations)", ds.ID(), ds.Len())
			printFile(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json or .yaml); stdout when empty")
	return cmd
}

func snapshotTable(metas []neo.Meta) string {
	rows := make([][]string, len(metas))
	for i, m := range metas {
		rows[i] = []string{m.ID, m.LoadedAt.Local().Format("2006-01-02 15:04"), m.StartDate, m.EndDate}
	}
	return newTable([]string{"ID", "Loaded", "Start", "End"}, rows).Render() + "\n" +
		StyleDim.Render(strconv.Itoa(len(metas))+" snapshots")
}
