package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	nio "github.com/matzehuels/neoscope/pkg/io"
)

// fetchCommand loads a date range and prints the dataset summary.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		flags  loadFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Load a date range from the feed and summarize it",
		Long: `Fetch close approaches for a date range (at most 8 days, inclusive) and
print a summary. Responses are cached, so repeated runs are served locally
until --refresh is given.

With --output the dataset is written as a snapshot that other commands can
read back with --input.`,
		Example: `  neoscope fetch
  neoscope fetch --start 2024-03-01 --end 2024-03-07
  neoscope fetch -o week.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.loadDataset(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			ds := res.Dataset
			out := cmd.OutOrStdout()

			if output != "" {
				if err := nio.ExportSnapshot(ds, output); err != nil {
					return err
				}
			}

			summary := ds.Summary()
			if err := c.emit(out, summary, func() string {
				var b strings.Builder
				b.WriteString(StyleTitle.Render("Dataset " + summary.ID))
				b.WriteString("\n")
				b.WriteString(newTable([]string{"", ""}, [][]string{
					{"range", summary.StartDate + " to " + summary.EndDate},
					{"loaded", summary.LoadedAt.Format("2006-01-02 15:04:05")},
					{"total", strconv.Itoa(summary.TotalCount)},
					{"hazardous", strconv.Itoa(summary.HazardousCount)},
					{"non-hazardous", strconv.Itoa(summary.NonHazardousCount)},
				}).Render())
				return b.String()
			}); err != nil {
				return err
			}

			if c.isTable() {
				printLoadStats(out, ds.Len(), ds.HazardousCount(), len(ds.Dates()), res.CacheHit)
				if ds.Len() == 0 {
					printWarning(out, "No close approaches in this range")
				}
				if output != "" {
					printFile(out, output)
				} else {
					printNextStep(out, "Rank by velocity", "neoscope top velocity")
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the dataset snapshot to this file (.json or .yaml)")
	return cmd
}
