package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"transcriptor/internal/catalog"
	"transcriptor/internal/config"
	"transcriptor/internal/organizer"
	"transcriptor/internal/services"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "organize [id...]",
		Short: "Move downloaded files into the library layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("pass resource ids or --all")
			}
			return ctx.withStore(func(cfg *config.Config, store *catalog.Store) error {
				org := organizer.New(cfg, store, ctx.ensureLogger())

				resources, err := collectOrganizeTargets(cmd, store, all, args)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(resources) == 0 {
					fmt.Fprintln(out, "Nothing to organize")
					return nil
				}

				var failures int
				for _, resource := range resources {
					if err := org.Organize(cmd.Context(), resource); err != nil {
						failures++
						resource.Status = services.FailureStatus(err)
						resource.ErrorMessage = err.Error()
						if updateErr := store.Update(cmd.Context(), resource); updateErr != nil {
							return updateErr
						}
						fmt.Fprintf(out, "Resource %d failed: %v\n", resource.ID, err)
						continue
					}
					fmt.Fprintf(out, "Resource %d organized to %s\n", resource.ID, resource.FinalPath)
				}
				if failures > 0 {
					return fmt.Errorf("%d of %d resources failed to organize", failures, len(resources))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Organize every downloaded resource")
	return cmd
}

func collectOrganizeTargets(cmd *cobra.Command, store *catalog.Store, all bool, args []string) ([]*catalog.Resource, error) {
	if all {
		return store.List(cmd.Context(), catalog.StatusDownloaded)
	}

	resources := make([]*catalog.Resource, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid resource id %q", arg)
		}
		resource, err := store.GetByID(cmd.Context(), id)
		if err != nil {
			return nil, err
		}
		if resource == nil {
			return nil, fmt.Errorf("resource %d not found", id)
		}
		resources = append(resources, resource)
	}
	return resources, nil
}
