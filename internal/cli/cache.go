package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/cache"
)

// cacheCommand manages the local file cache. Redis entries expire on their own.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "cache",
		Short:       "Manage the local response cache",
		Annotations: map[string]string{annotationNoConfig: "true"},
	}

	var expired bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached feed responses and datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := openFileCache()
			if err != nil {
				return err
			}
			sweep, what := fc.Clear, "cached"
			if expired {
				sweep, what = fc.Prune, "expired"
			}
			n, err := sweep(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if n == 0 {
				printInfo(out, "No %s entries in %s", what, fc.Dir())
				return nil
			}
			printSuccess(out, "Removed %d %s entries", n, what)
			printDetail(out, "Directory: %s", fc.Dir())
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expired, "expired", false, "only remove entries past their TTL")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}

	cmd.AddCommand(clearCmd, pathCmd)
	return cmd
}

func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cache dir: %w", err)
	}
	return cache.NewFileCache(dir)
}
