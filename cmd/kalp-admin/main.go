package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kalpyotish/kalp-admin/internal/cmd"
	"github.com/kalpyotish/kalp-admin/internal/ui"
)

var errNotInteractive = errors.New("kalp-admin needs an interactive terminal. use 'kalp-admin login' and 'kalp-admin stats' in scripts")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	env := &cmd.Env{}
	root := &cobra.Command{
		Use:   "kalp-admin",
		Short: "Kalpyotish admin console",
		Long:  "kalp-admin: manage users, astrologers, products, poojas and banners for the Kalpyotish platform.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return env.Load(".env")
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return env.Close()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(env)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd(env))
	root.AddCommand(cmd.LogoutCmd(env))
	root.AddCommand(cmd.WhoamiCmd(env))
	root.AddCommand(cmd.StatsCmd(env))
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(env *cmd.Env) error {
	if !interactive() {
		return errNotInteractive
	}

	app := ui.NewApp(env.Client, env.Config, env.Session, env.Logger)
	env.Logger.Info("console started", "api", env.Client.BaseURL())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// interactive reports whether both ends of the session are a terminal.
var interactive = func() bool {
	return isInteractiveTerminal(os.Stdin) && isInteractiveTerminal(os.Stdout)
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
