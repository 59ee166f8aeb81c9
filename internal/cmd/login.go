package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kalpyotish/kalp-admin/internal/api"
	"github.com/kalpyotish/kalp-admin/internal/config"
)

var credentials = validator.New()

// RunInteractiveLogin prompts for email and password, calls the login API,
// and persists the admin session.
func RunInteractiveLogin(env *Env, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Fprint(out, "password: ")
	password, err := readPassword(in, reader, out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	input := api.LoginInput{Email: email, Password: password}
	if err := credentials.Struct(input); err != nil {
		return credentialError(err)
	}

	admin, err := env.Client.Login(input)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := env.Session.Login(admin); err != nil {
		return err
	}
	env.Client.SetToken(admin.Token)
	env.logger().Info("admin logged in", "email", admin.Email)

	name := admin.Name
	if strings.TrimSpace(name) == "" {
		name = admin.Email
	}
	fmt.Fprintf(out, "logged in as %s\n", name)
	fmt.Fprintf(out, "session saved to %s\n", config.Path())
	return nil
}

// readPassword reads without echo from a terminal, otherwise one line.
func readPassword(in io.Reader, reader *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		return string(b), err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func credentialError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	field := strings.ToLower(first.Field())
	if first.Tag() == "email" {
		return fmt.Errorf("%s must be a valid email address", field)
	}
	return fmt.Errorf("%s is required", field)
}

// LoginCmd returns the `kalp-admin login` command.
func LoginCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in as a Kalpyotish admin",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(env, c.InOrStdin(), c.OutOrStdout())
		},
	}
}
