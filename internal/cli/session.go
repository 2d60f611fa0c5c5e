package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/service"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Surveiller la session courante",
	}
	cmd.AddCommand(newSessionWatchCmd(), newSessionExtendCmd())
	return cmd
}

// newSessionWatchCmd runs the expiry watchdog in the foreground. While the
// session is inside the warning window it prints a live countdown and accepts
// "e" (prolonger) or "d" (déconnecter) on stdin.
func newSessionWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Afficher le compte à rebours d'expiration et prolonger la session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			expired := make(chan struct{})
			out := cmd.OutOrStdout()

			wd := service.NewWatchdog(a.store,
				a.log,
				func(remaining time.Duration) {
					fmt.Fprintf(out, "\rsession expire dans %s ('e' pour prolonger, 'd' pour se déconnecter) ", remaining.Round(time.Second))
				},
				func() { close(expired) },
			)
			wd.Start()
			defer wd.Stop()

			answers := make(chan string)
			go func() {
				sc := bufio.NewScanner(os.Stdin)
				for sc.Scan() {
					answers <- strings.TrimSpace(sc.Text())
				}
			}()

			fmt.Fprintf(out, "surveillance de la session (Ctrl+C pour quitter)\n")
			for {
				select {
				case <-cmd.Context().Done():
					return nil
				case <-expired:
					fmt.Fprintln(out)
					a.session.Invalidate("session expirée")
					fmt.Fprintln(out, "session expirée, reconnexion requise")
					return nil
				case ans := <-answers:
					switch ans {
					case "e":
						if err := wd.Extend(); err != nil {
							return fmt.Errorf("prolongation: %s", domain.FailureMessage(err))
						}
						fmt.Fprintln(out, "session prolongée")
					case "d":
						wd.Decline()
					}
				}
			}
		},
	}
}

// newSessionExtendCmd is the non-interactive counterpart of answering "e" in
// watch: one renewal, then exit.
func newSessionExtendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extend",
		Short: "Prolonger la session stockée d'une fenêtre de renouvellement",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.requireAuth(cmd.Context()); err != nil {
				return err
			}

			wd := service.NewWatchdog(a.store, a.log, nil, nil)
			if err := wd.Extend(); err != nil {
				return fmt.Errorf("prolongation: %s", domain.FailureMessage(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "session prolongée")
			return nil
		},
	}
}
