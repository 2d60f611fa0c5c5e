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

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Gérer les utilisateurs (administrateur uniquement)",
	}
	cmd.AddCommand(
		newUsersListCmd(),
		newUsersCreateCmd(),
		newUsersUpdateCmd(),
		newUsersDeleteCmd(),
	)
	return cmd
}

func usersCollection(a *app) *service.Collection[domain.User, domain.UserDraft] {
	return service.NewCollection[domain.User, domain.UserDraft](api.NewUsersClient(a.client))
}

// requireUserAdmin fails fast on the client side; the backend enforces the
// same rule regardless.
func requireUserAdmin(a *app) error {
	if !a.permissions().CanManageUsers {
		return fmt.Errorf("votre rôle ne permet pas de gérer les utilisateurs")
	}
	return nil
}

func newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lister les utilisateurs",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := requireUserAdmin(a); err != nil {
				return err
			}

			col := usersCollection(a)
			defer col.Close()
			if err := col.Load(cmd.Context(), ports.Filter{}); err != nil {
				return fmt.Errorf("chargement impossible: %s", domain.FailureMessage(err))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNOM\tEMAIL\tROLE\tDIRECTION")
			for _, u := range col.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Nom, u.Email, u.RoleNom, u.DirectionNom)
			}
			return w.Flush()
		},
	}
}

func newUsersCreateCmd() *cobra.Command {
	var draft domain.UserDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Créer un utilisateur",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := requireUserAdmin(a); err != nil {
				return err
			}

			col := usersCollection(a)
			defer col.Close()
			if err := col.Create(cmd.Context(), draft); err != nil {
				return fmt.Errorf("création refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Utilisateur créé")
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Nom, "nom", "", "nom complet")
	cmd.Flags().StringVar(&draft.Email, "email", "", "adresse email")
	cmd.Flags().StringVar(&draft.Password, "password", "", "mot de passe initial")
	cmd.Flags().IntVar(&draft.RoleID, "role", 0, "id du rôle")
	cmd.Flags().IntVar(&draft.DirectionID, "direction", 0, "id de la direction")
	return cmd
}

func newUsersUpdateCmd() *cobra.Command {
	var id int
	var patch domain.UserDraft

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Modifier un utilisateur",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := requireUserAdmin(a); err != nil {
				return err
			}

			col := usersCollection(a)
			defer col.Close()
			if err := col.Update(cmd.Context(), id, patch); err != nil {
				return fmt.Errorf("modification refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Utilisateur mis à jour")
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id de l'utilisateur")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&patch.Nom, "nom", "", "nom complet")
	cmd.Flags().StringVar(&patch.Email, "email", "", "adresse email")
	cmd.Flags().StringVar(&patch.Password, "password", "", "nouveau mot de passe")
	cmd.Flags().IntVar(&patch.RoleID, "role", 0, "id du rôle")
	cmd.Flags().IntVar(&patch.DirectionID, "direction", 0, "id de la direction")
	return cmd
}

func newUsersDeleteCmd() *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Supprimer un utilisateur",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := requireUserAdmin(a); err != nil {
				return err
			}

			col := usersCollection(a)
			defer col.Close()
			if err := col.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("suppression refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Utilisateur supprimé")
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "id de l'utilisateur")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
