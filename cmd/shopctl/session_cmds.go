package main

import (
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/service/session"
)

func newLoginCmd(env *environment) *cobra.Command {
	var form session.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in (mock: any password is accepted)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return env.signIn(form.Validate)
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVar(&form.Password, "password", "", "password")
	return cmd
}

func newRegisterCmd(env *environment) *cobra.Command {
	var form session.RegistrationForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in (mock)",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return env.signIn(form.Validate)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.Name, "name", "", "display name (defaults to the email local part)")
	flags.StringVar(&form.Email, "email", "", "email address")
	flags.StringVar(&form.Password, "password", "", "password")
	flags.StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation")
	return cmd
}

func (e *environment) signIn(validate func() (domain.Identity, error)) error {
	identity, err := validate()
	if err != nil {
		return e.printValidation(err)
	}
	e.session().Login(identity)
	e.printf("Signed in as %s <%s>\n", identity.Name, identity.Email)
	return nil
}

func newLogoutCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			env.session().Logout()
			env.printf("Signed out\n")
			return nil
		},
	}
}

func newWhoamiCmd(env *environment) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			identity, ok := env.session().Current()
			if !ok {
				env.printf("Not signed in\n")
				return nil
			}
			env.printf("%s <%s>\n", identity.Name, identity.Email)
			return nil
		},
	}
}
