package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beanmart/beanmart/internal/guard"
	"github.com/beanmart/beanmart/pkg/client"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Long: `Sign in to Beanmart and keep the session for later runs.

The password is read from --password, then $BEANMART_PASSWORD, then stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			var err error
			if email == "" {
				if email, err = prompt(in, out, "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				password = os.Getenv("BEANMART_PASSWORD")
			}
			if password == "" {
				if password, err = promptPassword(cmd.InOrStdin(), in, out); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			resp, err := a.api.Login(cmd.Context(), email, password)
			if err != nil {
				if client.IsUnauthorized(err) {
					return errors.New("login failed: wrong email or password")
				}
				return fmt.Errorf("login failed: %w", err)
			}
			if err := a.store.Login(resp.User, resp.Token); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			a.flush(cmd)

			snap := a.store.Snapshot()
			fmt.Fprintf(out, "Signed in as %s\n", snap.User.DisplayName())
			if guard.Landing(snap) == guard.PageAdmin {
				fmt.Fprintln(out, "Admin access enabled. Try: beanmart admin orders")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prefer $BEANMART_PASSWORD)")
	return cmd
}

// prompt writes label and reads one trimmed line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads the password without echo when stdin is a terminal.
// Pipes and redirected files fall back to the line reader.
func promptPassword(stdin io.Reader, in *bufio.Reader, out io.Writer) (string, error) {
	f, ok := stdin.(*os.File)
	if !ok || !term.IsTerminal(f.Fd()) {
		return prompt(in, out, "Password: ")
	}
	fmt.Fprint(out, "Password: ")
	b, err := term.ReadPassword(f.Fd())
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear your session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wasAuthenticated := a.store.IsAuthenticated()
			a.store.Logout()
			a.flush(cmd)
			if !wasAuthenticated {
				fmt.Fprintln(cmd.OutOrStdout(), "Already logged out.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := a.store.Snapshot()
			if err := guard.RequireAuthenticated(snap); err != nil {
				return err
			}
			label := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
			value := lipgloss.NewStyle().Bold(true)
			out := cmd.OutOrStdout()
			row := func(k, v string) {
				if v != "" {
					fmt.Fprintf(out, "  %s %s\n", label.Render(fmt.Sprintf("%-7s", k)), value.Render(v))
				}
			}
			u := snap.User
			fmt.Fprintln(out)
			row("name", u.Name)
			row("email", u.Email)
			row("phone", u.Phone)
			row("id", u.ID)
			if snap.IsAdmin {
				row("access", "admin")
			} else {
				row("access", "customer")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload your profile from the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := guard.RequireAuthenticated(a.store.Snapshot()); err != nil {
				return err
			}
			me, err := a.api.GetMe(cmd.Context())
			if err != nil {
				if client.IsUnauthorized(err) {
					a.logger.Info("token rejected on refresh, logging out")
					a.store.Logout()
					a.flush(cmd)
					return errors.New("session expired, you have been logged out (run `beanmart login`)")
				}
				return fmt.Errorf("refresh failed: %w", err)
			}
			wasAdmin := a.store.IsAdmin()
			if err := a.store.SetUser(me); err != nil {
				return fmt.Errorf("refresh failed: %w", err)
			}
			a.flush(cmd)
			if wasAdmin != a.store.IsAdmin() {
				a.logger.Info("admin access changed", zap.Bool("admin", a.store.IsAdmin()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile refreshed for %s\n", me.DisplayName())
			return nil
		},
	}
}
