package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"notes/internal/auth"
	"notes/internal/client"
	"notes/internal/identity"
	"notes/internal/logger"
	"notes/internal/view"

	"github.com/spf13/cobra"
)

var (
	apiURL      string
	sessionPath string
	tokenSecret string
	tokenIssuer string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:           "notes-cli",
	Short:         "Manage your notes from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", envOr("NOTES_API", "http://localhost:5000"), "notes API base URL")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", defaultSessionPath(), "session file")
	rootCmd.PersistentFlags().StringVar(&tokenSecret, "secret", envOr("AUTH_TOKEN_SECRET", "notes-dev"), "ID token signing secret shared with the API")
	rootCmd.PersistentFlags().StringVar(&tokenIssuer, "issuer", envOr("AUTH_TOKEN_ISSUER", "notes-local"), "ID token issuer")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".notes-session.yaml"
	}
	return filepath.Join(dir, "notes", "session.yaml")
}

func newProvider(account string) (*identity.Local, error) {
	return identity.NewLocal(auth.NewJWT(tokenSecret, tokenIssuer), sessionPath, account)
}

// openView restores the session and binds a view to it. The returned func
// unbinds the view.
func openView(ctx context.Context) (*view.View, func(), error) {
	p, err := newProvider("")
	if err != nil {
		return nil, nil, err
	}
	base := client.NewWithURL(apiURL)
	v := view.New(func(token string) view.API { return base.WithToken(token) })
	unbind := v.Bind(ctx, p)
	if v.User() == nil {
		unbind()
		return nil, nil, fmt.Errorf("%w (run: notes-cli login --email you@example.com)", view.ErrSignedOut)
	}
	return v, unbind, nil
}
