package client

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/notevault/internal/store"
	"github.com/MKhiriev/notevault/internal/utils"
	"github.com/MKhiriev/notevault/models"
)

// ErrNoteLocked is returned when plaintext would overwrite a locked note.
var ErrNoteLocked = errors.New("note is locked, use `vault save`")

func (c *CLI) noteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage plaintext note content",
	}
	cmd.AddCommand(c.notePutCommand(), c.noteShowCommand())
	return cmd
}

func (c *CLI) notePutCommand() *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "put <note-id>",
		Short: "Store stdin as the plaintext content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			noteID := args[0]

			data, err := io.ReadAll(c.stdin)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			contents := c.app.Storages().Contents
			item, err := contents.FindByNoteID(ctx, noteID)
			switch {
			case errors.Is(err, store.ErrContentNotFound):
				item = models.ContentItem{ID: utils.NewUUIDGenerator().Generate(), NoteID: noteID}
			case err != nil:
				return err
			case item.Locked:
				return ErrNoteLocked
			}

			now := time.Now().UTC()
			item.Type = contentType
			item.Data = string(data)
			item.DateEdited = now
			item.DateModified = now

			if err = c.validator.Validate(ctx, item); err != nil {
				return err
			}
			if err = contents.Upsert(ctx, item); err != nil {
				return err
			}
			c.success("Stored %s", styleHighlight.Sprint(noteID))
			return nil
		},
	}
	cmd.Flags().StringVarP(&contentType, "type", "t", models.ContentTypeTiptap, "Content type")
	return cmd
}

func (c *CLI) noteShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <note-id>",
		Short: "Print the stored content of a note as is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.app.Storages().Contents.FindByNoteID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if item.Locked {
				fmt.Fprintln(c.stderr, styleMuted.Sprint("locked"))
			}
			fmt.Fprintln(c.stdout, item.Data)
			return nil
		},
	}
}
