package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Settings directory commands",
}

var configDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the settings directory path",
	Long:  `Print the settings directory path without creating it.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := settings.Locator().ConfigDir()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the settings directory",
	Long:  `Create the settings directory and any missing parents, then print its path. Existing directories are left as they are.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, err := settings.Locator().EnsureConfigDir()
		if err != nil {
			return err
		}
		logger.Debug("settings directory ready", "path", dir)
		fmt.Fprintln(cmd.OutOrStdout(), dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDirCmd)
	configCmd.AddCommand(configInitCmd)
}
