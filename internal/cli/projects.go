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

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Lister et gérer les projets",
	}
	cmd.AddCommand(
		newProjectsListCmd(),
		newProjectsCreateCmd(),
		newProjectsUpdateCmd(),
		newProjectsDeleteCmd(),
	)
	return cmd
}

func projectsCollection(a *app) *service.Collection[domain.Project, domain.ProjectDraft] {
	return service.NewCollection[domain.Project, domain.ProjectDraft](api.NewProjectsClient(a.client))
}

func newProjectsListCmd() *cobra.Command {
	var statut, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les projets visibles",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := projectsCollection(a)
			defer col.Close()

			filter := ports.Filter{}
			if statut != "" {
				filter["statut"] = statut
			}
			if search != "" {
				filter["search"] = search
			}
			if err := col.Load(cmd.Context(), filter); err != nil {
				return fmt.Errorf("chargement impossible: %s", domain.FailureMessage(err))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOM\tSTATUT\tPRIORITE\tCHEF\tAVANCEMENT")
			for _, p := range col.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d%%\n", p.ID, p.Nom, p.Statut, p.Priorite, p.ChefProjetNom, p.Avancement)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&statut, "statut", "", "filtrer par statut")
	cmd.Flags().StringVar(&search, "search", "", "filtrer par nom")
	return cmd
}

func newProjectsCreateCmd() *cobra.Command {
	var draft domain.ProjectDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Créer un projet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if !a.permissions().CanCreateProject {
				return fmt.Errorf("votre rôle ne permet pas de créer des projets")
			}

			col := projectsCollection(a)
			defer col.Close()
			if err := col.Create(cmd.Context(), draft); err != nil {
				return fmt.Errorf("création refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Projet créé (%d projets visibles)\n", len(col.Items()))
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Nom, "nom", "", "nom du projet")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description")
	cmd.Flags().IntVar(&draft.ChefProjetID, "chef", 0, "id du chef de projet")
	cmd.Flags().IntVar(&draft.DirectionID, "direction", 0, "id de la direction")
	cmd.Flags().IntVar(&draft.StatutID, "statut", 0, "id du statut")
	cmd.Flags().IntVar(&draft.PrioriteID, "priorite", 0, "id de la priorité")
	cmd.Flags().Float64Var(&draft.BudgetPrevu, "budget", 0, "budget prévu")
	cmd.Flags().StringVar(&draft.DateDebut, "debut", "", "date de début (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&draft.DateFinPrevue, "fin", "", "date de fin prévue (AAAA-MM-JJ)")
	return cmd
}

func newProjectsUpdateCmd() *cobra.Command {
	var id int
	var patch domain.ProjectDraft

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifier un projet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := projectsCollection(a)
			defer col.Close()
			if err := col.Update(cmd.Context(), id, patch); err != nil {
				return fmt.Errorf("modification refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Projet mis à jour")
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id du projet")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&patch.Nom, "nom", "", "nom du projet")
	cmd.Flags().StringVar(&patch.Description, "description", "", "description")
	cmd.Flags().IntVar(&patch.ChefProjetID, "chef", 0, "id du chef de projet")
	cmd.Flags().IntVar(&patch.DirectionID, "direction", 0, "id de la direction")
	cmd.Flags().IntVar(&patch.StatutID, "statut", 0, "id du statut")
	cmd.Flags().IntVar(&patch.PrioriteID, "priorite", 0, "id de la priorité")
	cmd.Flags().Float64Var(&patch.BudgetPrevu, "budget", 0, "budget prévu")
	cmd.Flags().StringVar(&patch.DateDebut, "debut", "", "date de début (AAAA-MM-JJ)")
	cmd.Flags().StringVar(&patch.DateFinPrevue, "fin", "", "date de fin prévue (AAAA-MM-JJ)")
	return cmd
}

func newProjectsDeleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprimer un projet",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			col := projectsCollection(a)
			defer col.Close()
			if err := col.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("suppression refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Projet supprimé")
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id du projet")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
