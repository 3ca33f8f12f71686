package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"alcyxob/workout-tracker/internal/client"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the resolved flags and config for one invocation.
type cli struct {
	out       io.Writer
	configDir string
	baseURL   string
	token     string
	timeout   time.Duration
	verbose   bool

	logger *zap.Logger
	api    *client.Client
}

func newRootCmd(out io.Writer) *cobra.Command {
	app := &cli{out: out}

	rootCmd := &cobra.Command{
		Use:           "workouts",
		Short:         "Record and track your workouts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configDir, "config-dir", ".", "Directory holding config.yaml and .env")
	flags.StringVar(&app.baseURL, "base-url", "", "API base URL (default: client.base_url)")
	flags.StringVar(&app.token, "token", "", "Bearer token (default: client.token / CLIENT_TOKEN)")
	flags.DurationVar(&app.timeout, "timeout", 0, "Request timeout (default: client.timeout)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		app.registerCmd(),
		app.loginCmd(),
		app.whoamiCmd(),
		app.listCmd(),
		app.addCmd(),
		app.updateCmd(),
		app.completeCmd(),
		app.deleteCmd(),
	)
	return rootCmd
}

// init fills unset flags from config and builds the API client.
func (a *cli) init(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	if a.logger, err = logging.New(level, true); err != nil {
		return err
	}

	if a.baseURL == "" {
		a.baseURL = cfg.Client.BaseURL
	}
	if a.token == "" {
		a.token = cfg.Client.Token
	}
	if a.timeout <= 0 {
		a.timeout = cfg.Client.Timeout
	}
	a.api = client.New(a.baseURL, client.WithTimeout(a.timeout))
	a.logger.Debug("client ready",
		zap.String("command", cmd.Name()),
		zap.String("base_url", a.baseURL),
		zap.Duration("timeout", a.timeout),
		zap.Bool("has_token", a.token != ""),
	)
	return nil
}

// signIn opens a view for the configured token and loads the list.
func (a *cli) signIn(ctx context.Context) (*client.View, error) {
	if a.token == "" {
		return nil, fmt.Errorf("%w: run `workouts login` and pass --token or set CLIENT_TOKEN", client.ErrUnauthenticated)
	}
	view := client.NewView(a.api)
	if err := view.SignIn(ctx, a.token); err != nil {
		return nil, a.viewError(view, err)
	}
	a.logger.Debug("signed in", zap.String("owner", view.Session().OwnerID), zap.Int("workouts", len(view.Workouts())))
	return view, nil
}

// viewError prefers the view's user-facing message.
func (a *cli) viewError(view *client.View, err error) error {
	a.logger.Debug("operation failed", zap.Error(err))
	if msg := view.Message(); msg != "" {
		return fmt.Errorf("%s", msg)
	}
	return err
}

func (a *cli) printWorkouts(workouts []client.Workout) {
	if len(workouts) == 0 {
		fmt.Fprintln(a.out, "No workouts yet.")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDURATION\tSTATUS\tADDED")
	for _, w := range workouts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", w.ID, w.Name, w.Duration, w.Status, w.DateAdded)
	}
	_ = tw.Flush()
}

func (a *cli) report(view *client.View) {
	if msg := strings.TrimSpace(view.Message()); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	a.printWorkouts(view.Workouts())
}
