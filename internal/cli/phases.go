package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/service"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/infrastructure/api"
)

func newPhasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Gérer les phases d'un projet",
	}
	cmd.AddCommand(
		newPhasesListCmd(),
		newPhasesCreateCmd(),
		newPhasesUpdateCmd(),
		newPhasesDeleteCmd(),
	)
	return cmd
}

func phasesCollection(a *app, projectID int) *service.Collection[domain.Phase, domain.PhaseDraft] {
	return service.NewCollection[domain.Phase, domain.PhaseDraft](api.NewPhasesClient(a.client, projectID))
}

func newPhasesListCmd() *cobra.Command {
	var projectID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les phases d'un projet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := phasesCollection(a, projectID)
			defer col.Close()
			if err := col.Load(cmd.Context(), ports.Filter{}); err != nil {
				return fmt.Errorf("chargement impossible: %s", domain.FailureMessage(err))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tORDRE\tNOM\tSTATUT\tAVANCEMENT")
			for _, ph := range col.Items() {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%d%%\n", ph.ID, ph.Ordre, ph.Nom, ph.Statut, ph.Avancement)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "id du projet")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func newPhasesCreateCmd() *cobra.Command {
	var projectID int
	var draft domain.PhaseDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Ajouter une phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := phasesCollection(a, projectID)
			defer col.Close()
			if err := col.Create(cmd.Context(), draft); err != nil {
				return fmt.Errorf("création refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Phase créée")
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "id du projet")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().StringVar(&draft.Nom, "nom", "", "nom de la phase")
	cmd.Flags().StringVar(&draft.Statut, "statut", "", "statut")
	cmd.Flags().IntVar(&draft.Ordre, "ordre", 0, "ordre dans le projet")
	cmd.Flags().StringVar(&draft.DateDebut, "debut", "", "date de début (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&draft.DateFin, "fin", "", "date de fin (AAAA-MM-JJ)")
	cmd.Flags().IntVar(&draft.Avancement, "avancement", 0, "avancement (0-100)")
	return cmd
}

func newPhasesUpdateCmd() *cobra.Command {
	var projectID, id int
	var patch domain.PhaseDraft

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifier une phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := phasesCollection(a, projectID)
			defer col.Close()
			if err := col.Update(cmd.Context(), id, patch); err != nil {
				return fmt.Errorf("modification refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Phase mise à jour")
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "id du projet")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().IntVar(&id, "id", 0, "id de la phase")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&patch.Nom, "nom", "", "nom de la phase")
	cmd.Flags().StringVar(&patch.Statut, "statut", "", "statut")
	cmd.Flags().IntVar(&patch.Ordre, "ordre", 0, "ordre dans le projet")
	cmd.Flags().StringVar(&patch.DateDebut, "debut", "", "date de début (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&patch.DateFin, "fin", "", "date de fin (AAAA-MM-JJ)")
	cmd.Flags().IntVar(&patch.Avancement, "avancement", 0, "avancement (0-100)")
	return cmd
}

func newPhasesDeleteCmd() *cobra.Command {
	var projectID, id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprimer une phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := phasesCollection(a, projectID)
			defer col.Close()
			if err := col.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("suppression refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Phase supprimée")
			return nil
		},
	}

	cmd.Flags().IntVar(&projectID, "project", 0, "id du projet")
	_ = cmd.MarkFlagRequired("project")
	cmd.Flags().IntVar(&id, "id", 0, "id de la phase")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
