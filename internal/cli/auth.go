package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arens/quizdeck/internal/client"
	"github.com/arens/quizdeck/internal/config"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored session",
	}
	cmd.AddCommand(newRegisterCmd(), newLoginCmd(), newLogoutCmd(), newWhoamiCmd())
	return cmd
}

func newAPIClient() (config.Config, *client.Client, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	store, err := newStateStore(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, client.New(cfg.APIBaseURL, store), nil
}

func newRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create an account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := newAPIClient()
			if err != nil {
				return err
			}
			user, err := c.Register(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s.\n", user.Username)
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := newAPIClient()
			if err != nil {
				return err
			}
			user, err := c.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s.\n", user.Username)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := newAPIClient()
			if err != nil {
				return err
			}
			user, err := c.CurrentUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (member since %s)\n", user.Username, user.CreatedAt.Format("2006-01-02"))
			return nil
		},
	}
}
