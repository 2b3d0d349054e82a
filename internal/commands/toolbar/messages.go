package toolbarcmd

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-medit/internal/insertion"
)

const (
	insertMarkdownMessageType  = "medit.toolbar.insert_markdown"
	copyToClipboardMessageType = "medit.toolbar.copy_to_clipboard"
)

// InsertMarkdownCommand applies one toolbar action to the current selection.
type InsertMarkdownCommand struct {
	// Action names a toolbar catalog entry such as "bold" or "link".
	Action string `json:"action"`
}

// Type implements command.Message.
func (InsertMarkdownCommand) Type() string { return insertMarkdownMessageType }

// Validate ensures the action names a catalog entry.
func (cmd InsertMarkdownCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Action, validation.Required, validation.By(func(value any) error {
			name, _ := value.(string)
			if _, err := insertion.Lookup(name); err != nil {
				return validation.NewError("medit.toolbar.insert_markdown.unknown_action", "action is not a toolbar entry")
			}
			return nil
		})),
	)
}

// CopyToClipboardCommand copies the document plain text to the clipboard.
type CopyToClipboardCommand struct{}

// Type implements command.Message.
func (CopyToClipboardCommand) Type() string { return copyToClipboardMessageType }

// Validate implements the validation hook; the command carries no input.
func (CopyToClipboardCommand) Validate() error { return nil }
