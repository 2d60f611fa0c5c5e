package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "Afficher les référentiels (directions, rôles, statuts, priorités)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			ctx := cmd.Context()
			tables := []struct {
				title string
				fetch func(context.Context) ([]domain.Reference, error)
			}{
				{"Directions", a.refs.Directions},
				{"Rôles", a.refs.Roles},
				{"Statuts", a.refs.Statuts},
				{"Priorités", a.refs.Priorites},
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tables {
				refs, err := t.fetch(ctx)
				if err != nil {
					return fmt.Errorf("%s: %s", t.title, domain.FailureMessage(err))
				}
				fmt.Fprintf(w, "%s:\n", t.title)
				for _, r := range refs {
					fmt.Fprintf(w, "  %d\t%s\n", r.ID, r.Nom)
				}
			}
			return w.Flush()
		},
	}
}
