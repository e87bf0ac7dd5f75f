package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/models"
)

const accountPasswordPrompt = "account password: "

var subscriptionNames = map[models.SubscriptionType]string{
	models.SubscriptionBasic:           "basic",
	models.SubscriptionTrial:           "trial",
	models.SubscriptionBeta:            "beta",
	models.SubscriptionPremium:         "premium",
	models.SubscriptionPremiumExpired:  "premium (expired)",
	models.SubscriptionPremiumCanceled: "premium (canceled)",
}

func (c *CLI) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the signed-in account and its keys",
	}
	cmd.AddCommand(
		c.accountFetchCommand(),
		c.accountKeyCommand(),
		c.accountRekeyCommand(),
		c.accountLogoutCommand(),
	)
	return cmd
}

func (c *CLI) accountFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the local account record from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Services().Users.FetchUser(cmd.Context())
			if err != nil {
				return err
			}
			if user == nil {
				return ErrNotSignedIn
			}

			fmt.Fprintf(c.stdout, "Account %s %s\n", styleHighlight.Sprint(user.Email), styleMuted.Sprint(user.ID))
			fmt.Fprintf(c.stdout, "Plan: %s\n", subscriptionNames[user.Subscription.Type])
			if user.IsPremium(time.Now()) {
				fmt.Fprintln(c.stdout, styleSuccess.Sprint(markOK), "Vault available")
			} else {
				fmt.Fprintln(c.stdout, styleWarning.Sprint(markFail), "Vault needs a premium plan")
			}
			return nil
		},
	}
}

// unlockAccount derives the master key from the account password and holds
// it for the rest of the process. Nothing is written to disk, so every command
// that needs the key asks for the password again.
func (c *CLI) unlockAccount(cmd *cobra.Command, given string) error {
	pw, err := c.password(given, accountPasswordPrompt, false)
	if errors.Is(err, ErrNoTerminal) {
		return fmt.Errorf("%w: %w", service.ErrNoMasterKey, err)
	}
	if err != nil {
		return err
	}

	users := c.app.Services().Users
	key, err := users.DeriveMasterKey(cmd.Context(), pw)
	if err != nil {
		return err
	}
	return users.SaveMasterKey(cmd.Context(), key)
}

func (c *CLI) accountKeyCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:       "key <attachmentsKey|monographPasswordsKey|inboxKeys>",
		Short:     "Get or create an application key",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(service.KeyAttachments), string(service.KeyMonographPasswords), string(service.KeyInbox)},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.unlockAccount(cmd, password); err != nil {
				return err
			}

			key, err := c.app.Services().Keys.GetOrCreate(cmd.Context(), service.KeyID(args[0]))
			if err != nil {
				return err
			}

			fmt.Fprintf(c.stdout, "%s %s\n", styleHighlight.Sprint(args[0]), styleMuted.Sprint(key.Kind))
			if key.Kind == models.KeyAsymmetric && key.Pair != nil {
				fmt.Fprintf(c.stdout, "Public key: %s\n", key.Pair.PublicKey)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password (prompted when omitted)")
	return cmd
}

func (c *CLI) accountRekeyCommand() *cobra.Command {
	var oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "rekey",
		Short: "Re-wrap every application key under a new account password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			services := c.app.Services()

			oldPw, err := c.password(oldPassword, "current "+accountPasswordPrompt, false)
			if err != nil {
				return err
			}
			newPw, err := c.password(newPassword, "new "+accountPasswordPrompt, true)
			if err != nil {
				return err
			}

			oldKey, err := services.Users.DeriveMasterKey(ctx, oldPw)
			if err != nil {
				return err
			}
			newKey, err := services.Users.DeriveMasterKey(ctx, newPw)
			if err != nil {
				return err
			}

			if err = services.Keys.RewrapAll(ctx, oldKey, newKey); err != nil {
				return err
			}
			if err = services.Users.SaveMasterKey(ctx, newKey); err != nil {
				return err
			}
			c.success("Application keys re-wrapped")
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old", "", "Current account password")
	cmd.Flags().StringVar(&newPassword, "new", "", "New account password")
	return cmd
}

func (c *CLI) accountLogoutCommand() *cobra.Command {
	var revoke bool
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget every local secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services().Users.Logout(cmd.Context(), revoke, "User logged out"); err != nil {
				return err
			}
			c.success("Signed out")
			return nil
		},
	}
	cmd.Flags().BoolVar(&revoke, "revoke", true, "Revoke the token on the identity server")
	return cmd
}
