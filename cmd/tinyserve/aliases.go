package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/keys-i/tinyserve/internal/aliasapi"
	"github.com/keys-i/tinyserve/internal/aliases"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var aliasesCmd = &cobra.Command{
	Use:   "aliases",
	Short: "Option key alias commands",
	Long: `Resolve and inspect option key aliases.

Aliases are read from --aliases (or TINYSERVE_ALIASES) when set, otherwise
from aliases.json in the settings directory.`,
}

var aliasesResolveCmd = &cobra.Command{
	Use:   "resolve <key>...",
	Short: "Print the canonical key for each spelling",
	Long: `Print the canonical key for each spelling.

Examples:
  tinyserve aliases resolve SHOW_DIR
  tinyserve aliases resolve show-dir weak_etags`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadAliases()
		if err != nil {
			return err
		}

		unknown := 0
		for _, key := range args {
			canonical, ok := table.Resolve(key)
			if !ok {
				unknown++
				fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("%s: unknown key", key))
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", key, canonical)
		}
		if unknown > 0 {
			return fmt.Errorf("%d of %d keys not recognized", unknown, len(args))
		}
		return nil
	},
}

var aliasesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List canonical keys and their aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadAliases()
		if err != nil {
			return err
		}

		rows := make([][]string, 0, table.Len())
		for _, canonical := range table.Canonical() {
			rows = append(rows, []string{canonical, strings.Join(table.Aliases(canonical), ", ")})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"CANONICAL", "ALIASES"}, rows))
		return nil
	},
}

var aliasesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Report spellings claimed by more than one canonical key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadAliases()
		if err != nil {
			return err
		}

		conflicts := table.Conflicts()
		if len(conflicts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("no conflicts in %s (%d keys)", table.Source(), table.Len()))
			return nil
		}
		for _, c := range conflicts {
			fmt.Fprintln(cmd.OutOrStdout(), color.RedString("conflict: %q claimed by %s (resolves to %s)",
				c.Normalized, strings.Join(c.Keys, ", "), c.Winner))
		}
		return fmt.Errorf("found %d alias conflict(s) in %s", len(conflicts), table.Source())
	},
}

var aliasesPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the aliases file that would be loaded",
	Long:  `Print the aliases file that would be loaded, without reading it or creating the settings directory.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := settings.AliasesPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var aliasesServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve alias lookups over HTTP",
	Long: `Serve alias lookups over HTTP until interrupted.

Endpoints:
  GET /aliases          canonical keys and their aliases
  GET /aliases/{key}    canonical key for a spelling (404 if unknown)
  GET /conflicts        spellings claimed by more than one key`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		table, err := loadAliases()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, addr, aliasapi.NewHandler(table))
	},
}

func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving alias lookups", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("alias server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop alias server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("alias server failed: %w", err)
	}
	logger.Info("alias server stopped")
	return nil
}

// loadAliases loads the configured alias table and warns about conflicts.
func loadAliases() (*aliases.Table, error) {
	table, err := settings.LoadAliases()
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded aliases", "source", table.Source(), "keys", table.Len())
	for _, c := range table.Conflicts() {
		logger.Warn("alias claimed by more than one key",
			"spelling", c.Normalized, "keys", strings.Join(c.Keys, ","), "resolves_to", c.Winner)
	}
	return table, nil
}

func init() {
	rootCmd.AddCommand(aliasesCmd)
	aliasesCmd.AddCommand(aliasesResolveCmd)
	aliasesCmd.AddCommand(aliasesListCmd)
	aliasesCmd.AddCommand(aliasesCheckCmd)
	aliasesCmd.AddCommand(aliasesPathCmd)
	aliasesCmd.AddCommand(aliasesServeCmd)

	aliasesServeCmd.Flags().String("addr", "127.0.0.1:7411", "Address to listen on")
}
