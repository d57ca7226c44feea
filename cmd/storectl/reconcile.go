package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gisteam.backend/internal/app"
)

func newReconcileCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Collapse duplicate team members and accounts",
		Long: `Groups team members by name and accounts by username and then email.
In each group the most recently updated record is kept and the rest are deleted.
Deletion failures are reported and do not stop the run.`,
		Example: `  storectl reconcile --dry-run
  storectl reconcile --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(cmd.Context(), func(c *app.Container) error {
				reports, err := c.ReconcileUsecase.RunAll(cmd.Context(), dryRun)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					return writeJSON(out, reports)
				}

				failed := 0
				for _, r := range reports {
					verb := "deleted"
					if r.DryRun {
						verb = "would delete"
					}
					fmt.Fprintf(out, "%s by %s: scanned %d, %d duplicate groups, %s %d, failed %d\n",
						r.Entity, r.KeyName, r.Scanned, len(r.Groups), verb, r.DeletedCount(), r.FailedCount())
					for _, g := range r.Groups {
						fmt.Fprintf(out, "  %q keep %s drop %v\n", g.Key, g.RetainedID, g.DeletedIDs)
						if len(g.AbsentIDs) > 0 {
							fmt.Fprintf(out, "    already gone %v\n", g.AbsentIDs)
						}
						for _, f := range g.Failed {
							fmt.Fprintf(out, "    failed %s: %s\n", f.ID, f.Error)
						}
					}
					failed += r.FailedCount()
				}
				if failed > 0 {
					return fmt.Errorf("%d deletions failed; re-run reconcile to retry", failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted without deleting")
	return cmd
}
