package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errNotLoggedIn = errors.New("not logged in. run 'kalp-admin login' first")

// LogoutCmd returns the `kalp-admin logout` command.
func LogoutCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved admin session",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			out := c.OutOrStdout()
			if _, ok := env.Session.Current(); !ok {
				fmt.Fprintln(out, "not logged in")
				return nil
			}
			if err := env.Session.Logout(); err != nil {
				return err
			}
			env.Client.SetToken("")
			env.logger().Info("admin logged out")
			fmt.Fprintln(out, "logged out")
			return nil
		},
	}
}

// WhoamiCmd returns the `kalp-admin whoami` command.
func WhoamiCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			admin, ok := env.Session.Current()
			if !ok {
				return errNotLoggedIn
			}
			shown := *admin
			shown.Token = ""
			data, err := yaml.Marshal(shown)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(data)
			return err
		},
	}
}
