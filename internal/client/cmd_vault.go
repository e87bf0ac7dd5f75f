package client

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/notevault/internal/service"
	"github.com/MKhiriev/notevault/models"
)

const vaultPasswordPrompt = "vault password: "

func (c *CLI) vaultCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Lock notes behind the vault password",
	}

	cmd.AddCommand(
		c.vaultCreateCommand(),
		c.vaultUnlockCommand(),
		c.vaultLockCommand(),
		c.vaultAddCommand(),
		c.vaultOpenCommand(),
		c.vaultRemoveCommand(),
		c.vaultSaveCommand(),
		c.vaultChangePasswordCommand(),
		c.vaultClearCommand(),
		c.vaultDeleteCommand(),
		c.vaultStatusCommand(),
	)
	return cmd
}

// withPassword adds the --password flag shared by the vault commands.
func withPassword(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "password", "p", "", "Vault password (prompted when omitted)")
}

// unlocked resolves the vault password and caches it for the rest of the
// command.
func (c *CLI) unlocked(cmd *cobra.Command, given string) error {
	password, err := c.password(given, vaultPasswordPrompt, false)
	if err != nil {
		return err
	}
	return c.app.Services().Vault.Unlock(cmd.Context(), password)
}

func (c *CLI) vaultCreateCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := c.password(password, vaultPasswordPrompt, true)
			if err != nil {
				return err
			}
			if err = c.app.Services().Vault.Create(cmd.Context(), pw); err != nil {
				return err
			}
			c.success("Vault created")
			return nil
		},
	}
	withPassword(cmd, &password)
	return cmd
}

func (c *CLI) vaultUnlockCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Check the vault password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.unlocked(cmd, password); err != nil {
				return err
			}
			c.success("Vault unlocked")
			return nil
		},
	}
	withPassword(cmd, &password)
	return cmd
}

func (c *CLI) vaultLockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Forget the cached vault password",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c.app.Services().Vault.Lock()
			c.success("Vault locked")
			return nil
		},
	}
}

func (c *CLI) vaultAddCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "add <note-id>...",
		Short: "Lock notes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.unlocked(cmd, password); err != nil {
				return err
			}
			for _, noteID := range args {
				if err := c.app.Services().Vault.Add(cmd.Context(), noteID); err != nil {
					return fmt.Errorf("lock %s: %w", noteID, err)
				}
				c.success("Locked %s", styleHighlight.Sprint(noteID))
			}
			return nil
		},
	}
	withPassword(cmd, &password)
	return cmd
}

func (c *CLI) vaultOpenCommand() *cobra.Command {
	var (
		password string
		copyOut  bool
	)
	cmd := &cobra.Command{
		Use:   "open <note-id>",
		Short: "Print the decrypted content of a locked note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := c.password(password, vaultPasswordPrompt, false)
			if err != nil {
				return err
			}

			content, err := c.app.Services().Vault.Open(cmd.Context(), args[0], pw)
			if err != nil {
				return err
			}

			if copyOut {
				if err = c.copyText(content.Data); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				c.success("Copied %s to the clipboard", styleHighlight.Sprint(args[0]))
				return nil
			}
			fmt.Fprintln(c.stdout, content.Data)
			return nil
		},
	}
	withPassword(cmd, &password)
	cmd.Flags().BoolVarP(&copyOut, "copy", "c", false, "Copy the content to the clipboard instead of printing it")
	return cmd
}

func (c *CLI) vaultRemoveCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "remove <note-id>...",
		Short: "Unlock notes permanently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := c.password(password, vaultPasswordPrompt, false)
			if err != nil {
				return err
			}
			for _, noteID := range args {
				if err = c.app.Services().Vault.Remove(cmd.Context(), noteID, pw); err != nil {
					return fmt.Errorf("unlock %s: %w", noteID, err)
				}
				c.success("Removed %s from the vault", styleHighlight.Sprint(noteID))
			}
			return nil
		},
	}
	withPassword(cmd, &password)
	return cmd
}

func (c *CLI) vaultSaveCommand() *cobra.Command {
	var (
		password    string
		contentType string
		sessionID   string
	)
	cmd := &cobra.Command{
		Use:   "save <note-id>",
		Short: "Replace the content of a locked note with stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.unlocked(cmd, password); err != nil {
				return err
			}

			data, err := io.ReadAll(c.stdin)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			save := models.NoteSave{
				NoteID:    args[0],
				SessionID: sessionID,
				Content:   &models.NoteContent{Type: contentType, Data: string(data)},
			}
			if err = c.validator.Validate(cmd.Context(), save); err != nil {
				return err
			}

			if err = c.app.Services().Vault.Save(cmd.Context(), save); err != nil {
				return err
			}
			c.success("Saved %s", styleHighlight.Sprint(args[0]))
			return nil
		},
	}
	withPassword(cmd, &password)
	cmd.Flags().StringVarP(&contentType, "type", "t", models.ContentTypeTiptap, "Content type")
	cmd.Flags().StringVar(&sessionID, "session", "", "Edit-history session id")
	return cmd
}

func (c *CLI) vaultChangePasswordCommand() *cobra.Command {
	var oldPassword, newPassword string
	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Re-encrypt every locked note under a new password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			oldPw, err := c.password(oldPassword, "current "+vaultPasswordPrompt, false)
			if err != nil {
				return err
			}
			newPw, err := c.password(newPassword, "new "+vaultPasswordPrompt, true)
			if err != nil {
				return err
			}
			if err = c.app.Services().Vault.ChangePassword(cmd.Context(), oldPw, newPw); err != nil {
				return err
			}
			c.success("Vault password changed")
			return nil
		},
	}
	cmd.Flags().StringVar(&oldPassword, "old", "", "Current vault password")
	cmd.Flags().StringVar(&newPassword, "new", "", "New vault password")
	return cmd
}

func (c *CLI) vaultClearCommand() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Unlock every locked note and keep the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := c.password(password, vaultPasswordPrompt, false)
			if err != nil {
				return err
			}
			if err = c.app.Services().Vault.Clear(cmd.Context(), pw); err != nil {
				return err
			}
			c.success("Vault cleared")
			return nil
		},
	}
	withPassword(cmd, &password)
	return cmd
}

func (c *CLI) vaultDeleteCommand() *cobra.Command {
	var allNotes bool
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the vault",
		Long:  "Delete the vault record. Locked notes stay locked unless --all-notes is given, in which case they are deleted too.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services().Vault.Delete(cmd.Context(), allNotes); err != nil {
				return err
			}
			if allNotes {
				c.success("Vault and locked notes deleted")
			} else {
				c.success("Vault deleted")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allNotes, "all-notes", false, "Also delete every locked note")
	return cmd
}

func (c *CLI) vaultStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the vault exists and how many notes it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Services().Vault.Status(cmd.Context())
			if err != nil {
				return err
			}
			c.printVaultStatus(status)
			return nil
		},
	}
}

func (c *CLI) printVaultStatus(status service.VaultStatus) {
	if !status.Exists {
		fmt.Fprintln(c.stdout, styleWarning.Sprint("No vault"), styleMuted.Sprintf("%d locked notes", status.LockedNotes))
		return
	}

	state := styleWarning.Sprint("locked")
	if status.Unlocked {
		state = styleSuccess.Sprint("unlocked") + " " + styleMuted.Sprint("until "+status.ExpiresAt.Format(time.Kitchen))
	}
	fmt.Fprintf(c.stdout, "Vault %s, %d locked notes\n", state, status.LockedNotes)
}
