package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/quill/internal/router"
	"github.com/samvad-hq/quill/internal/ui"
)

func newLoginCommand(c *CLI) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:         "login --token <token>",
		Short:       "Store the bearer token used for authenticated requests",
		Args:        cobra.NoArgs,
		Annotations: routed(router.LoginPath),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Store.SaveToken(token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}
			c.app.Notifier.Notify(ui.Notification{Message: "Signed in", Type: ui.TypeSuccess})
			c.flushNotifications(cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "bearer token issued by the backend")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}

func newLogoutCommand(c *CLI) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Store.ClearToken(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			c.app.Notifier.Notify(ui.Notification{Message: "Signed out", Type: ui.TypeInfo})
			c.flushNotifications(cmd.ErrOrStderr())
			return nil
		},
	}
}
