package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/neoscope/pkg/config"
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations/nasa"
)

// configCommand manages the TOML config file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		Annotations: map[string]string{
			annotationNoConfig: "true",
		},
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

// configFile returns --config or the default location.
func (c *CLI) configFile() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errs.New(errs.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
			}
			if err := config.Write(path, config.Default()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Wrote default config")
			printFile(out, path)
			printNextStep(out, "Use your own API key", "export "+config.EnvAPIKey+"=...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configFile()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand prints the effective settings after the file and the
// environment are applied.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cfg := c.config
			cfg.APIKey = maskKey(cfg.APIKey)
			cfg.Redis.Password = maskKey(cfg.Redis.Password)

			out := cmd.OutOrStdout()
			if c.isTable() {
				return toml.NewEncoder(out).Encode(cfg)
			}
			return c.emit(out, cfg, nil)
		},
	}
}

// maskKey hides all but the last four characters of a secret.
func maskKey(s string) string {
	if len(s) <= 4 || s == nasa.DefaultAPIKey {
		return s
	}
	return "****" + s[len(s)-4:]
}
