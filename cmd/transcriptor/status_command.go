package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Summarize catalog health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				health, err := store.Health(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)

				fmt.Fprintln(out, renderStatusLine("Catalog", statusInfo, store.Path(), colorize))
				fmt.Fprintln(out, renderStatusLine("Total", statusInfo, fmt.Sprintf("%d", health.Total), colorize))
				fmt.Fprintln(out, renderStatusLine("Pending", statusInfo, fmt.Sprintf("%d", health.Pending), colorize))
				fmt.Fprintln(out, renderStatusLine("Processing", statusInfo, fmt.Sprintf("%d", health.Processing), colorize))
				fmt.Fprintln(out, renderStatusLine("Completed", statusOK, fmt.Sprintf("%d", health.Completed), colorize))

				failedKind := statusOK
				if health.Failed > 0 {
					failedKind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Failed", failedKind, fmt.Sprintf("%d", health.Failed), colorize))

				reviewKind := statusOK
				if health.Review > 0 {
					reviewKind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Review", reviewKind, fmt.Sprintf("%d", health.Review), colorize))

				dbHealth, err := store.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				dbKind := statusOK
				if !dbHealth.DatabaseReadable || !dbHealth.TableExists {
					dbKind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Database", dbKind,
					fmt.Sprintf("readable %s, table %s", yesNo(dbHealth.DatabaseReadable), yesNo(dbHealth.TableExists)), colorize))

				integrityKind := statusOK
				if !dbHealth.IntegrityCheck {
					integrityKind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Integrity", integrityKind, yesNo(dbHealth.IntegrityCheck), colorize))
				return nil
			})
		},
	}
}
