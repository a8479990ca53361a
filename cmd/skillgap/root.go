package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/skillgap/internal/config"
	"github.com/kingrea/skillgap/internal/logbook"
	"github.com/kingrea/skillgap/internal/logging"
	"github.com/kingrea/skillgap/internal/roles"
	"github.com/kingrea/skillgap/internal/session"
	"github.com/kingrea/skillgap/internal/tui"
)

// launcher runs the prepared view. Tests swap it out to inspect the App.
type launcher func(cmd *cobra.Command, app *tui.App, altScreen bool) error

type rootOptions struct {
	dir         string
	role        string
	file        string
	noAltScreen bool
}

func newRootCommand(launch launcher) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "skillgap",
		Short: "Find the gap between your CV and your target internship role",
		Long: `skillgap opens an interactive analyzer: attach your CV, pick a target
role, and generate a readiness score, skill breakdown, 90-day roadmap,
and portfolio project ideas.

The CV is referenced by name only; it is never opened or uploaded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, altScreen, diag, err := prepare(opts)
			if err != nil {
				return err
			}
			defer diag.Close()
			diag.Printf("launching view (alt screen %t)", altScreen)
			if err := diag.Errorf(launch(cmd, app, altScreen), "running view"); err != nil {
				return err
			}
			diag.Printf("view closed")
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.dir, "dir", "", "project directory holding .skillgap/ (default: current directory)")
	cmd.Flags().StringVar(&opts.role, "role", "", "initial target role: "+roleNames())
	cmd.Flags().StringVar(&opts.file, "file", "", "CV to attach on launch")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "render inline instead of using the alternate screen")

	cmd.AddCommand(newRolesCommand())
	return cmd
}

// prepare resolves config and flags into a ready App and opens the
// diagnostics log. The caller closes the logger.
func prepare(opts *rootOptions) (*tui.App, bool, *logging.Logger, error) {
	dir := opts.dir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, false, nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	if err := config.InitDir(dir); err != nil {
		return nil, false, nil, fmt.Errorf("initialize %s: %w", config.Dir, err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, false, nil, err
	}
	diag, err := logging.New(cfg)
	if err != nil {
		return nil, false, nil, err
	}
	fail := func(err error) (*tui.App, bool, *logging.Logger, error) {
		diag.Close()
		return nil, false, nil, err
	}
	diag.Printf("skillgap started in %s", dir)

	role := cfg.DefaultRole()
	if opts.role != "" {
		role, err = roles.ParseKey(opts.role)
		if err != nil {
			return fail(diag.Errorf(fmt.Errorf("--role: %w", err), "resolve role"))
		}
	}

	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		return fail(diag.Errorf(err, "open journal"))
	}
	lb.Info("session opened in %s", dir)

	sess := session.New(
		session.WithRole(role),
		session.WithObserver(tui.Journal(lb)),
	)
	if opts.file != "" {
		sess.AttachFile(session.NewFileRef(opts.file))
	}

	app := tui.NewApp(sess, tui.WithConfig(cfg), tui.WithLogbook(lb))
	altScreen := cfg.Project.Display.AltScreen && !opts.noAltScreen
	return app, altScreen, diag, nil
}

func runProgram(cmd *cobra.Command, app *tui.App, altScreen bool) error {
	var programOpts []tea.ProgramOption
	if altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	programOpts = append(programOpts, tea.WithContext(cmd.Context()))
	if _, err := tea.NewProgram(app, programOpts...).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func roleNames() string {
	names := make([]string, 0, len(roles.Keys()))
	for _, key := range roles.Keys() {
		names = append(names, key.String())
	}
	return strings.Join(names, ", ")
}
