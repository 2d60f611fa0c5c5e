package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "S'authentifier auprès du backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			if email == "" {
				email = prompt("Email: ")
			}
			if password == "" {
				password = prompt("Mot de passe: ")
			}

			user, err := a.session.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("connexion refusée: %s", domain.FailureMessage(err))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Connecté en tant que %s (%s)\n", user.Nom, user.RoleNom)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "adresse email")
	cmd.Flags().StringVar(&password, "password", "", "mot de passe")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Fermer la session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.session.Bootstrap(cmd.Context()); err != nil {
				return err
			}
			a.session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Session fermée")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Afficher l'utilisateur courant et ses droits",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			user := a.session.CurrentUser()
			perms := a.permissions()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", user.Nom, user.Email)
			fmt.Fprintf(out, "Rôle: %s\n", user.RoleNom)
			if user.DirectionNom != "" {
				fmt.Fprintf(out, "Direction: %s\n", user.DirectionNom)
			}
			fmt.Fprintf(out, "Créer des projets: %v\n", perms.CanCreateProject)
			fmt.Fprintf(out, "Gérer les utilisateurs: %v\n", perms.CanManageUsers)
			fmt.Fprintf(out, "Voir tous les projets: %v\n", perms.CanViewAllProjects)
			return nil
		},
	}
}

func prompt(label string) string {
	fmt.Fprint(os.Stderr, label)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
