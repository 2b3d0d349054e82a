package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/goliatone/go-medit"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/insertion"
	"github.com/goliatone/go-medit/internal/session"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

const editHelp = `type text to append it as a paragraph, or use a command:
  :select <block> <start> <end>   select a rune range inside a block
  :all                            select the whole document
  :blur                           drop the selection
  :<action>                       apply a toolbar action (%s)
  :copy                           copy the document to the clipboard
  :preview                        print the rendered HTML
  :stats                          print word and character counts
  :text                           print the plain text
  :save                           write the pending snapshot now
  :quit                           save and exit
`

// prompter is the subset of liner.State used by the editing loop.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// newPrompter is swapped in tests.
var newPrompter = func() (prompter, func() error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)
	return line, line.Close
}

func runEdit(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("edit", stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := common.resolve()
	if err != nil {
		return err
	}

	module, err := medit.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	s, err := module.Open(ctx, session.WithNotifier(&printNotifier{w: stdout}))
	if err != nil {
		return err
	}

	p, closePrompt := newPrompter()
	loopErr := editLoop(ctx, s, p, stdout)
	_ = closePrompt()

	if err := s.Close(ctx); err != nil {
		return err
	}
	return loopErr
}

func editLoop(ctx context.Context, s *medit.Session, p prompter, out io.Writer) error {
	if text := s.Output().PlainText; text != "" {
		fmt.Fprintf(out, "restored %d words\n", s.Output().Words)
	}
	for {
		input, err := p.Prompt("medit> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) != "" {
			p.AppendHistory(input)
		}

		quit, err := dispatch(ctx, s, input, out)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func dispatch(ctx context.Context, s *medit.Session, input string, out io.Writer) (bool, error) {
	if !strings.HasPrefix(input, ":") {
		if s.Output().PlainText == "" {
			return false, s.Type(ctx, input)
		}
		return false, s.Type(ctx, "\n"+input)
	}

	fields := strings.Fields(strings.TrimPrefix(input, ":"))
	if len(fields) == 0 {
		return false, nil
	}
	switch name := strings.ToLower(fields[0]); name {
	case "quit", "q", "exit":
		return true, nil
	case "help":
		fmt.Fprintf(out, editHelp, strings.Join(insertion.Names(), ", "))
	case "select":
		sel, err := parseSelection(fields[1:])
		if err != nil {
			return false, err
		}
		return false, s.Select(ctx, sel)
	case "all":
		return false, s.SelectAll(ctx)
	case "blur":
		return false, s.Blur(ctx)
	case "copy":
		return false, s.CopyToClipboard(ctx)
	case "preview":
		fmt.Fprintln(out, strings.TrimSpace(s.Output().HTML))
	case "stats":
		o := s.Output()
		fmt.Fprintf(out, "words: %d characters: %d\n", o.Words, o.Characters)
	case "text":
		fmt.Fprintln(out, s.Output().PlainText)
	case "save":
		return false, s.Persistence().Flush(ctx)
	default:
		return false, s.Toolbar(ctx, name)
	}
	return false, nil
}

func parseSelection(args []string) (document.Selection, error) {
	if len(args) != 3 {
		return document.Selection{}, errors.New("usage: :select <block> <start> <end>")
	}
	nums := make([]int, len(args))
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return document.Selection{}, fmt.Errorf("invalid number %q", arg)
		}
		nums[i] = n
	}
	return document.Range(
		document.Point{Block: nums[0], Offset: nums[1]},
		document.Point{Block: nums[0], Offset: nums[2]},
	), nil
}

func completeCommand(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	commands := append([]string{"select", "all", "blur", "copy", "preview", "stats", "text", "save", "quit", "help"}, insertion.Names()...)
	var out []string
	for _, name := range commands {
		if strings.HasPrefix(":"+name, line) {
			out = append(out, ":"+name)
		}
	}
	return out
}

type printNotifier struct {
	w io.Writer
}

func (n *printNotifier) Notify(note interfaces.Notification) {
	fmt.Fprintf(n.w, "[%s] %s\n", note.Severity, note.Message)
}

func (n *printNotifier) Clear() {}
