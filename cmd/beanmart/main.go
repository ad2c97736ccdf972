package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beanmart/beanmart/internal/browser"
	"github.com/beanmart/beanmart/internal/config"
	"github.com/beanmart/beanmart/internal/logging"
	"github.com/beanmart/beanmart/internal/persist"
	"github.com/beanmart/beanmart/internal/session"
	"github.com/beanmart/beanmart/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(context.Background(), newApp(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the process-wide dependencies. The func fields are swapped in
// tests.
type app struct {
	loadConfig func() (*config.Config, error)
	openURL    func(url string) error
	runTUI     func(m tea.Model) (tea.Model, error)

	verbose bool

	cfg     *config.Config
	logger  *zap.Logger
	backend persist.Backend
	store   *session.Store
	api     *client.Client
}

func newApp() *app {
	return &app{
		loadConfig: config.Load,
		openURL:    browser.Open,
		runTUI: func(m tea.Model) (tea.Model, error) {
			return tea.NewProgram(m, tea.WithAltScreen()).Run()
		},
	}
}

// run executes the command line and always releases the session store, so
// the last mutation reaches the persister even when a command fails.
func run(ctx context.Context, a *app, args []string) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "beanmart",
		Short: "Beanmart coffee storefront in your terminal",
		Long: `beanmart signs you in to the Beanmart storefront, keeps your session
between runs, and lets you browse coffees and orders from the terminal.

Run without arguments to open the dashboard.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		RunE: a.runDash,
	}
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "debug logging to stderr")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newRefreshCmd(a),
		newProductsCmd(a),
		newOrdersCmd(a),
		newAdminCmd(a),
		newOpenCmd(a),
		newDashCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads config, builds the logger and rehydrates the session store.
func (a *app) setup(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	backend, err := persist.Open(ctx, cfg)
	if err != nil {
		logger.Sync() //nolint:errcheck
		return err
	}
	logger.Debug("session backend ready", zap.String("backend", cfg.Session.Backend))

	a.cfg = cfg
	a.logger = logger
	a.backend = backend
	a.store = session.New(ctx, backend,
		session.WithLogger(logger.Named("session")),
		session.WithWriteTimeout(cfg.Session.WriteTimeout),
	)
	a.api = client.New(cfg.APIURL, a.store)
	return nil
}

func (a *app) close() {
	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			a.logger.Warn("session store did not shut down cleanly", zap.Error(err))
		}
		a.store = nil
	}
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Warn("closing session backend", zap.Error(err))
		}
		a.backend = nil
	}
	if a.logger != nil {
		a.logger.Sync() //nolint:errcheck
	}
}

// flush waits for the latest session state to be written. A failed write
// leaves the in-memory session intact, so it is reported but not fatal.
func (a *app) flush(cmd *cobra.Command) {
	if err := a.store.Flush(cmd.Context()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: session not saved: %v\n", err)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the beanmart version",
		Args:  cobra.NoArgs,
		// No config or session needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "beanmart "+version)
		},
	}
}
