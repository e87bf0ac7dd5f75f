package client

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

func (c *CLI) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect and manage the account token",
	}
	cmd.AddCommand(
		c.tokenShowCommand(),
		c.tokenRefreshCommand(),
		c.tokenRevokeCommand(),
		c.tokenSetCommand(),
		c.tokenWatchCommand(),
	)
	return cmd
}

func (c *CLI) tokenShowCommand() *cobra.Command {
	var renew bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := c.app.Services().Tokens.GetToken(cmd.Context(), renew, false)
			if err != nil {
				return err
			}
			if token == nil {
				return ErrNotSignedIn
			}
			c.printToken(*token)
			return nil
		},
	}
	cmd.Flags().BoolVar(&renew, "renew", false, "Refresh the token first when it has expired")
	return cmd
}

func (c *CLI) tokenRefreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Force a token refresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := c.app.Services().Tokens.GetToken(cmd.Context(), true, true)
			if err != nil {
				return err
			}
			if token == nil {
				return ErrNotSignedIn
			}
			c.success("Token refreshed")
			c.printToken(*token)
			return nil
		},
	}
}

func (c *CLI) tokenRevokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke",
		Short: "Revoke the token and forget it locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services().Tokens.RevokeToken(cmd.Context()); err != nil {
				return err
			}
			c.success("Token revoked")
			return nil
		},
	}
}

func (c *CLI) tokenSetCommand() *cobra.Command {
	var (
		token     models.Token
		fromStdin bool
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store a token issued by the identity server",
		Long: `Store a token issued by the identity server. Either pass the fields as flags or
pipe the token endpoint response with --stdin. Without --expires-in the expiry
is read from the access token when it is a JWT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if fromStdin {
				token = models.Token{}
				if err := json.NewDecoder(c.stdin).Decode(&token); err != nil {
					return fmt.Errorf("decode token: %w", err)
				}
			}
			if err := c.validator.Validate(cmd.Context(), token); err != nil {
				return err
			}

			if err := c.app.Services().Tokens.SaveToken(cmd.Context(), token); err != nil {
				return err
			}
			c.success("Token stored")
			return nil
		},
	}
	cmd.Flags().StringVar(&token.AccessToken, "access", "", "Access token")
	cmd.Flags().StringVar(&token.RefreshToken, "refresh", "", "Refresh token")
	cmd.Flags().StringVar(&token.Scope, "scope", "", "Space separated scopes")
	cmd.Flags().Int64Var(&token.ExpiresIn, "expires-in", 0, "Access token lifetime in seconds")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read the token as JSON from stdin")
	return cmd
}

func (c *CLI) tokenWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Keep the token fresh until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			bus := c.app.Bus()
			bus.Subscribe(events.TokenRefreshed, func(any) {
				fmt.Fprintln(c.stdout, styleSuccess.Sprint(markOK), "Token refreshed", styleMuted.Sprint(time.Now().Format(time.Kitchen)))
			})
			bus.Subscribe(events.UserSessionExpired, func(any) {
				fmt.Fprintln(c.stderr, styleError.Sprint(markFail), "Session expired")
				stop()
			})

			c.app.StartWorkers(ctx)
			fmt.Fprintln(c.stdout, styleInfo.Sprint(markNext), "Watching the token, press Ctrl+C to stop")
			<-ctx.Done()
			return nil
		},
	}
}

func (c *CLI) printToken(token models.Token) {
	state := styleSuccess.Sprint("valid")
	if token.Expired(time.Now()) {
		state = styleWarning.Sprint("expired")
	}

	fmt.Fprintf(c.stdout, "Token %s %s\n", state, styleMuted.Sprint("expires "+token.ExpiresAt().Format(time.RFC3339)))
	if subject, err := utils.ParseJWTSubject(token.AccessToken); err == nil && subject != "" {
		fmt.Fprintf(c.stdout, "Subject: %s\n", subject)
	}
	fmt.Fprintf(c.stdout, "Scope: %s\n", token.Scope)
	fmt.Fprintf(c.stdout, "Refreshable: %t\n", token.Refreshable())
}
