package cli

import (
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionShells maps each supported shell to its cobra generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func shellNames() []string {
	names := make([]string, 0, len(completionShells))
	for name := range completionShells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for bash, zsh, fish or powershell.

  source <(neoscope completion bash)
  neoscope completion zsh > "${fpath[1]}/_neoscope"
  neoscope completion fish > ~/.config/fish/completions/neoscope.fish
  neoscope completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		Annotations:           map[string]string{annotationNoConfig: "true"},
		ValidArgs:             shellNames(),
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := completionShells[args[0]]
			return gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
