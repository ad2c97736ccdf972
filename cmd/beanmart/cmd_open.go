package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beanmart/beanmart/internal/guard"
	"github.com/beanmart/beanmart/internal/tui"
)

func newOpenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "open [page]",
		Short: "Open a storefront page in the browser",
		Long: `Open a storefront page in the browser.

Pages: shop, guides, about, login, account, orders, admin.
Without a page, opens where you would land after signing in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := a.store.Snapshot()
			name := guard.Landing(snap)
			if len(args) == 1 {
				name = args[0]
			}
			page, err := guard.Resolve(snap, name)
			if err != nil {
				return fmt.Errorf("open %s: %w", name, err)
			}
			url := a.cfg.StorefrontURL() + page.Path
			if err := a.openURL(url); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Visit this URL manually:\n  %s\n", url)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", url)
			return nil
		},
	}
}

func newDashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Open the terminal dashboard",
		Args:  cobra.NoArgs,
		RunE:  a.runDash,
	}
}

// runDash shows the dashboard for signed-in users and a greeting otherwise.
func (a *app) runDash(cmd *cobra.Command, _ []string) error {
	if !a.store.IsAuthenticated() {
		printGreeting(cmd.OutOrStdout())
		return nil
	}
	final, err := a.runTUI(tui.NewApp(a.store, a.api, a.cfg.StorefrontURL()))
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	if m, ok := final.(tui.App); ok && m.LoggedOut() {
		a.flush(cmd)
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
	}
	return nil
}
