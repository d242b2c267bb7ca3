package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/keys-i/tinyserve/internal/config"
	"github.com/keys-i/tinyserve/internal/logging"
	"github.com/spf13/cobra"
)

var (
	v        = config.New()
	settings config.Settings
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:               "tinyserve",
	Short:             "tinyserve - option key aliases and settings directory",
	Long:              `tinyserve resolves user-facing spellings of option keys to their canonical names and manages the per-user settings directory (~/.tinyserve/configs).`,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		settings = config.Load(v)
		l, err := logging.New(cmd.ErrOrStderr(), settings.LogLevel)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	if err := config.BindFlags(v, rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
