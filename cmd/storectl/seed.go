package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gisteam.backend/internal/app"
	"gisteam.backend/internal/usecases"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "seed <file.yaml>",
		Short:   "Create team members, projects and gallery items from a YAML file",
		Long:    "Records whose name or title is already stored are skipped, so a seed can be applied more than once.",
		Example: "  storectl seed seeds/initial.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := usecases.LoadSeedFile(args[0])
			if err != nil {
				return err
			}
			return opts.withContainer(cmd.Context(), func(c *app.Container) error {
				report, err := c.SeedUsecase.Apply(cmd.Context(), seed)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, report)
				}
				fmt.Fprintf(out, "team members: %d created, %d skipped\n", report.TeamMembers.Created, report.TeamMembers.Skipped)
				fmt.Fprintf(out, "projects:     %d created, %d skipped\n", report.Projects.Created, report.Projects.Skipped)
				fmt.Fprintf(out, "gallery:      %d created, %d skipped\n", report.Gallery.Created, report.Gallery.Skipped)
				return nil
			})
		},
	}
}
