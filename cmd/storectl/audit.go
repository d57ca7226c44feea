package main

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"gisteam.backend/internal/app"
	"gisteam.backend/internal/usecases"
)

var errAuditFindings = errors.New("audit found inconsistencies")

func newAuditCmd(opts *rootOptions) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report malformed documents, duplicate keys and dangling creators",
		Long:  "Scans every collection read-only. Nothing is modified.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withContainer(cmd.Context(), func(c *app.Container) error {
				report, err := c.AuditUsecase.Run(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if opts.jsonOut {
					if err := writeJSON(out, report); err != nil {
						return err
					}
				} else {
					printAudit(out, report)
				}
				if strict && !report.Clean() {
					return errAuditFindings
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when anything is found")
	return cmd
}

func printAudit(w io.Writer, r *usecases.AuditReport) {
	sections := []struct {
		name string
		c    usecases.CollectionAudit
	}{
		{"accounts", r.Accounts},
		{"projects", r.Projects},
		{"gallery", r.Gallery},
		{"team-members", r.TeamMembers},
		{"contact-messages", r.ContactMessages},
	}
	for _, s := range sections {
		malformed := 0
		if s.c.Stats != nil {
			malformed = len(s.c.Stats.Malformed)
		}
		fmt.Fprintf(w, "%-17s records %-5d malformed %-3d duplicate keys %-3d unknown creators %d\n",
			s.name, s.c.Records, malformed, len(s.c.Duplicates), s.c.UnknownCreators)

		keys := make([]string, 0, len(s.c.Duplicates))
		for k := range s.c.Duplicates {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  duplicate %q x%d\n", k, s.c.Duplicates[k])
		}
		if s.c.Stats != nil {
			for _, p := range s.c.Stats.Malformed {
				fmt.Fprintf(w, "  malformed %s\n", p)
			}
		}
	}
	if r.Clean() {
		fmt.Fprintln(w, "clean")
	}
}
