package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
	"transcriptor/internal/timecode"
)

func newResourceCommand(ctx *commandContext) *cobra.Command {
	resourceCmd := &cobra.Command{
		Use:   "resource",
		Short: "Manage cataloged streaming resources",
	}

	resourceCmd.AddCommand(newResourceAddCommand(ctx))
	resourceCmd.AddCommand(newResourceListCommand(ctx))
	resourceCmd.AddCommand(newResourceShowCommand(ctx))
	resourceCmd.AddCommand(newResourceRemoveCommand(ctx))
	resourceCmd.AddCommand(newResourceClearCommand(ctx))
	resourceCmd.AddCommand(newResourceResetCommand(ctx))

	return resourceCmd
}

func newResourceAddCommand(ctx *commandContext) *cobra.Command {
	var title string
	var kind string
	var duration string

	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Register a resource URL in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseDurationFlag(duration)
			if err != nil {
				return err
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				resource, err := store.Add(cmd.Context(), args[0], title, catalog.Kind(kind))
				if err != nil {
					if errors.Is(err, catalog.ErrDuplicateURL) {
						return fmt.Errorf("url already cataloged: %s", args[0])
					}
					return err
				}
				if seconds > 0 {
					resource.DurationSeconds = seconds
					if err := store.Update(cmd.Context(), resource); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added resource %d (%s)\n", resource.ID, resource.ExternalID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Human readable title for the resource")
	cmd.Flags().StringVarP(&kind, "kind", "k", string(catalog.KindVideo), "Resource kind (video, audio, transcript)")
	cmd.Flags().StringVarP(&duration, "duration", "d", "", "Runtime as seconds (95.5) or a timecode (00:01:35,500)")
	return cmd
}

// parseDurationFlag accepts either plain seconds or an HH:MM:SS,mmm timecode.
func parseDurationFlag(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	if seconds, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("duration must not be negative, got %q", value)
		}
		return seconds, nil
	}
	seconds, err := timecode.Parse(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("duration must not be negative, got %q", value)
	}
	return seconds, nil
}

func newResourceListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				var statuses []catalog.Status
				if trimmed := strings.TrimSpace(statusFilter); trimmed != "" {
					status := catalog.Status(trimmed)
					if !catalog.ValidStatus(status) {
						return fmt.Errorf("unknown status %q", trimmed)
					}
					statuses = append(statuses, status)
				}

				resources, err := store.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(resources) == 0 {
					fmt.Fprintln(out, "No resources found")
					return nil
				}

				fmt.Fprintln(out, renderResourceTable(resources))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&statusFilter, "status", "s", "", "Only list resources with this status")
	return cmd
}

func newResourceShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one resource in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource id %q", args[0])
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				resource, err := store.GetByID(cmd.Context(), id)
				if err != nil {
					return err
				}
				if resource == nil {
					return fmt.Errorf("resource %d not found", id)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:           %d\n", resource.ID)
				fmt.Fprintf(out, "External ID:  %s\n", resource.ExternalID)
				fmt.Fprintf(out, "URL:          %s\n", resource.URL)
				fmt.Fprintf(out, "Title:        %s\n", resource.Title)
				fmt.Fprintf(out, "Kind:         %s\n", resource.Kind)
				fmt.Fprintf(out, "Status:       %s\n", resource.Status)
				fmt.Fprintf(out, "Duration:     %s\n", formatDuration(resource.DurationSeconds))
				fmt.Fprintf(out, "Local path:   %s\n", valueOrDash(resource.LocalPath))
				fmt.Fprintf(out, "Final path:   %s\n", valueOrDash(resource.FinalPath))
				if resource.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:        %s\n", resource.ErrorMessage)
				}
				fmt.Fprintf(out, "Created:      %s\n", resource.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Updated:      %s\n", resource.UpdatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

func newResourceRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a resource from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid resource id %q", args[0])
			}
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("resource %d not found", id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed resource %d\n", id)
				return nil
			})
		},
	}
}

func newResourceClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove all completed resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				count, err := store.ClearCompleted(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d completed resources\n", count)
				return nil
			})
		},
	}
}

func newResourceResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-stuck",
		Short: "Reset in-flight resources back to pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(_ *config.Config, store *catalog.Store) error {
				count, err := store.ResetStuckProcessing(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d resources to pending\n", count)
				return nil
			})
		},
	}
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	return timecode.Format(seconds)
}
