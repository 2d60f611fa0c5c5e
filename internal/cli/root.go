package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "psim",
	Short:         "Console d'administration projets SI",
	Long:          "psim pilote le backend de gestion de projets SI : authentification, projets, phases, utilisateurs et référentiels.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newProjectsCmd(),
		newUsersCmd(),
		newPhasesCmd(),
		newRefsCmd(),
		newSessionCmd(),
	)
}
