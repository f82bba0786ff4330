package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the local identity provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginEmail == "" {
			return errors.New("--email is required")
		}
		p, err := newProvider(loginEmail)
		if err != nil {
			return err
		}
		u, err := p.SignIn(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", u.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider("")
		if err != nil {
			return err
		}
		if err := p.SignOut(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the signed-in email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newProvider("")
		if err != nil {
			return err
		}
		if u := p.CurrentUser(); u != nil {
			fmt.Fprintln(cmd.OutOrStdout(), u.Email)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account to sign in as")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
