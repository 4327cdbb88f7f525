package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
	"transcriptor/internal/ingest"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Register downloaded media files found on disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				scanner, err := ingest.New(cfg, store, ctx.ensureLogger())
				if err != nil {
					return err
				}
				result, err := scanner.Scan(cmd.Context(), dir)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scanned %d files: %d registered, %d skipped, %d already cataloged\n",
					result.Scanned, result.Registered, result.Skipped, result.Duplicates)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan (defaults to the download directory)")
	return cmd
}
