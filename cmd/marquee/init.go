package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/marquee/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example config file",
	Long: `Write an annotated example config file for marqueed.

By default the file goes to $XDG_CONFIG_HOME/marquee/config.toml.

Examples:
  marquee init
  marquee init --path ./config.toml --force
  marquee init --print > config.toml`,
	Args: cobra.NoArgs,
	RunE: runInitCmd,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("path", config.DefaultPath(), "Where to write the config")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
	initCmd.Flags().Bool("print", false, "Print the config to stdout instead of writing it")
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("path")
	force, _ := cmd.Flags().GetBool("force")
	printOnly, _ := cmd.Flags().GetBool("print")

	if printOnly {
		_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigTOML())
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Set TMDB_API_KEY (or tmdb.api_key) and run 'marqueed'.")
	return nil
}
