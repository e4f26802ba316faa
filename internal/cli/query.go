package cli

import (
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// queryCommands returns the commands that answer one question about a
// dataset. Each accepts the shared load flags.
func (c *CLI) queryCommands() []*cobra.Command {
	return []*cobra.Command{
		c.datesCommand(),
		c.sizesCommand(),
		c.topCommand(),
		c.statsCommand(),
		c.dailyCommand(),
		c.viewsCommand(),
		c.viewCommand(),
	}
}

// datasetCommand wires the shared load flags and hands the loaded dataset
// to run.
func (c *CLI) datasetCommand(cmd *cobra.Command, run func(cmd *cobra.Command, args []string, ds *neo.Dataset) error) *cobra.Command {
	var flags loadFlags
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		res, err := c.loadDataset(cmd.Context(), &flags)
		if err != nil {
			return err
		}
		return run(cmd, args, res.Dataset)
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) datesCommand() *cobra.Command {
	var detail bool
	cmd := c.datasetCommand(&cobra.Command{
		Use:   "dates",
		Short: "Group observations by close-approach date",
		Args:  cobra.NoArgs,
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		byDate := ds.ByDate()
		return c.emit(cmd.OutOrStdout(), byDate, func() string {
			if !detail {
				return dateTable(ds.Dates(), byDate)
			}
			var b strings.Builder
			for _, d := range ds.Dates() {
				b.WriteString(StyleTitle.Render(d))
				b.WriteString("\n")
				b.WriteString(observationTable(byDate[d]))
				b.WriteString("\n")
			}
			return strings.TrimSuffix(b.String(), "\n")
		})
	})
	cmd.Flags().BoolVar(&detail, "detail", false, "list every observation per date")
	return cmd
}

func (c *CLI) sizesCommand() *cobra.Command {
	var category string
	cmd := c.datasetCommand(&cobra.Command{
		Use:   "sizes",
		Short: "Group observations into size categories",
		Long: `Partition observations by average diameter:

  small        below 0.1 km
  medium       0.1 km up to 0.5 km
  large        0.5 km up to 1.0 km
  very_large   1.0 km and above`,
		Args: cobra.NoArgs,
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		cats := ds.BySizeCategory()
		if category == "" {
			return c.emit(cmd.OutOrStdout(), cats, func() string { return sizeTable(cats) })
		}
		obs := cats.Get(neo.SizeCategory(category))
		return c.emit(cmd.OutOrStdout(), obs, func() string { return observationTable(obs) })
	})
	cmd.Flags().StringVar(&category, "category", "", "list the observations in one category")
	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(neo.SizeCategoryOrder))
		for i, s := range neo.SizeCategoryOrder {
			names[i] = string(s)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if category == "" {
			return nil
		}
		for _, s := range neo.SizeCategoryOrder {
			if string(s) == category {
				return nil
			}
		}
		return errs.New(errs.ErrCodeInvalidInput, "unknown size category %q", category)
	}
	return cmd
}

func (c *CLI) topCommand() *cobra.Command {
	var n int
	cmd := c.datasetCommand(&cobra.Command{
		Use:       "top <metric>",
		Short:     "Rank observations by a metric, largest first",
		Example:   "  neoscope top velocity -n 5",
		Args:      cobra.ExactArgs(1),
		ValidArgs: metricNames(),
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		m, err := neo.ParseMetric(args[0])
		if err != nil {
			return err
		}
		top, err := ds.TopN(m, n)
		if err != nil {
			return err
		}
		return c.emit(cmd.OutOrStdout(), top, func() string { return observationTable(top) })
	})
	cmd.Flags().IntVarP(&n, "limit", "n", neo.DefaultTopN, "number of observations to show")
	return cmd
}

func (c *CLI) statsCommand() *cobra.Command {
	return c.datasetCommand(&cobra.Command{
		Use:       "stats <metric>",
		Short:     "Summary statistics for a metric",
		Long:      "Print count, min, max, mean, median and the lower and upper quartiles of a metric.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: metricNames(),
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		m, err := neo.ParseMetric(args[0])
		if err != nil {
			return err
		}
		s, err := ds.Stats(m)
		if err != nil {
			return err
		}
		return c.emit(cmd.OutOrStdout(), s, func() string { return statsTable(s) })
	})
}

func (c *CLI) dailyCommand() *cobra.Command {
	return c.datasetCommand(&cobra.Command{
		Use:   "daily",
		Short: "Hazardous and non-hazardous counts per day",
		Args:  cobra.NoArgs,
	}, func(cmd *cobra.Command, args []string, ds *neo.Dataset) error {
		days := ds.DailyCounts()
		return c.emit(cmd.OutOrStdout(), days, func() string { return dailyTable(days) })
	})
}

func metricNames() []string {
	ms := neo.Metrics()
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = m.String()
	}
	return names
}
