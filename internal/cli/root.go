package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/buildinfo"
	nio "github.com/matzehuels/neoscope/pkg/io"
)

// RootCommand builds the command tree. Config is loaded before any
// subcommand runs, except for the commands that manage the config itself.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Explore near-Earth asteroid close approaches",
		Long: `neoscope loads close-approach data from the NASA NeoWs feed and answers
questions about it: groupings by date and size, rankings, summary statistics
and daily hazard counts. It can also serve the dataset over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			installHooks(c.Logger)
			if skipConfig(cmd) {
				return nil
			}
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/neoscope/config.toml)")
	root.PersistentFlags().StringVarP(&c.format, "format", "f", string(nio.FormatTable), "output format: table, json, yaml")
	_ = root.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(nio.Formats))
		for i, f := range nio.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddGroup(
		&cobra.Group{ID: groupData, Title: "Data Commands:"},
		&cobra.Group{ID: groupQuery, Title: "Query Commands:"},
		&cobra.Group{ID: groupManage, Title: "Management Commands:"},
	)

	for _, cmd := range []*cobra.Command{c.fetchCommand(), c.browseCommand(), c.serveCommand()} {
		cmd.GroupID = groupData
		root.AddCommand(cmd)
	}
	for _, cmd := range c.queryCommands() {
		cmd.GroupID = groupQuery
		root.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{c.cacheCommand(), c.configCommand(), c.archiveCommand(), c.completionCommand()} {
		cmd.GroupID = groupManage
		root.AddCommand(cmd)
	}

	return root
}

const (
	groupData   = "data"
	groupQuery  = "query"
	groupManage = "manage"
)

// skipConfig reports whether cmd runs without a valid config, so a broken
// file can still be inspected or replaced.
func skipConfig(cmd *cobra.Command) bool {
	for ; cmd != nil; cmd = cmd.Parent() {
		if cmd.Annotations[annotationNoConfig] == "true" {
			return true
		}
	}
	return false
}

const annotationNoConfig = "neoscope/no-config"
