// Command medit renders markdown, reports text metrics and runs an
// interactive editing session over the durable editor slot.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-medit"
	"github.com/goliatone/go-medit/internal/metrics"
)

const usage = `usage: medit <command> [flags] [file]

commands:
  render   convert a markdown file (or stdin) to sanitized HTML
  stats    print word and character counts for a file (or stdin)
  edit     start an interactive session over the editor slot
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "medit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errors.New("command is required")
	}
	switch cmd, rest := args[0], args[1:]; cmd {
	case "render":
		return runRender(ctx, rest, stdin, stdout, stderr)
	case "stats":
		return runStats(rest, stdin, stdout, stderr)
	case "edit":
		return runEdit(ctx, rest, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// commonFlags are shared by every subcommand that builds a module.
type commonFlags struct {
	config   string
	storage  string
	dir      string
	dsn      string
	logLevel string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.config, "config", "c", "", "JSON or JSONC configuration file")
	fs.StringVar(&c.storage, "storage", "", "slot store provider: memory, file, sqlite or postgres")
	fs.StringVar(&c.dir, "dir", "", "directory for the file store")
	fs.StringVar(&c.dsn, "dsn", "", "connection string for database stores")
	fs.StringVar(&c.logLevel, "log-level", "", "enable console logging at the given level")
}

func (c *commonFlags) resolve() (medit.Config, error) {
	cfg := medit.DefaultConfig()
	if c.config != "" {
		loaded, err := medit.LoadConfig(c.config)
		if err != nil {
			return medit.Config{}, err
		}
		cfg = loaded
	}
	if c.storage != "" {
		cfg.Storage.Provider = c.storage
	}
	if c.dir != "" {
		cfg.Storage.Dir = c.dir
	}
	if c.dsn != "" {
		cfg.Storage.DSN = c.dsn
	}
	if c.logLevel != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = c.logLevel
	}
	return cfg, cfg.Validate()
}

func newFlagSet(name string, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func runRender(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("render", stderr)
	var common commonFlags
	common.register(fs)
	keepFrontMatter := fs.Bool("keep-front-matter", false, "render front matter as part of the body")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve()
	if err != nil {
		return err
	}
	// Rendering never touches the slot.
	cfg.Storage = medit.StorageConfig{Provider: "memory"}

	body, err := readInput(fs.Args(), stdin, !*keepFrontMatter)
	if err != nil {
		return err
	}

	module, err := medit.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer module.Close()

	fmt.Fprintln(stdout, strings.TrimSpace(module.Renderer().Render(body)))
	return nil
}

func runStats(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("stats", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	body, err := readInput(fs.Args(), stdin, true)
	if err != nil {
		return err
	}
	m := metrics.Compute(strings.TrimSpace(body))
	fmt.Fprintf(stdout, "words: %d\ncharacters: %d\n", m.Words, m.Characters)
	return nil
}

// readInput reads the named file, or stdin for "-" and no argument, and
// drops a leading front matter block when strip is set.
func readInput(args []string, stdin io.Reader, strip bool) (string, error) {
	var r io.Reader = stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	if !strip {
		data, err := io.ReadAll(r)
		return string(data), err
	}
	var meta map[string]any
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return "", fmt.Errorf("parse front matter: %w", err)
	}
	return string(body), nil
}
