package insertion

import (
	"errors"
	"strings"
)

// ErrUnknownAction is returned by Lookup for names outside the catalog.
var ErrUnknownAction = errors.New("insertion: unknown toolbar action")

// Action is one toolbar button: a literal symbol and whether it wraps the
// selection or prefixes it.
type Action struct {
	Name   string
	Symbol string
	Wrap   bool
}

const (
	ActionBold      = "bold"
	ActionItalic    = "italic"
	ActionHeading   = "heading"
	ActionHighlight = "highlight"
	ActionRule      = "rule"
	ActionQuote     = "quote"
	ActionList      = "list"
	ActionLink      = "link"
	ActionImage     = "image"
)

var toolbar = []Action{
	{Name: ActionBold, Symbol: "**", Wrap: true},
	{Name: ActionItalic, Symbol: "_", Wrap: true},
	{Name: ActionHeading, Symbol: "# "},
	{Name: ActionHighlight, Symbol: "==", Wrap: true},
	{Name: ActionRule, Symbol: "*** "},
	{Name: ActionQuote, Symbol: "> "},
	{Name: ActionList, Symbol: "- "},
	{Name: ActionLink, Symbol: "[Text](https://medit.pages.dev/)"},
	{Name: ActionImage, Symbol: "![Alt text](/favicon.ico)"},
}

// Toolbar returns the catalog in display order.
func Toolbar() []Action {
	return append([]Action(nil), toolbar...)
}

// Names returns the catalog action names in display order.
func Names() []string {
	names := make([]string, len(toolbar))
	for i, action := range toolbar {
		names[i] = action.Name
	}
	return names
}

// Lookup resolves an action by name, ignoring case and surrounding space.
func Lookup(name string) (Action, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, action := range toolbar {
		if action.Name == key {
			return action, nil
		}
	}
	return Action{}, ErrUnknownAction
}
