package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/yaml"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()
	m.Stdin = os.Stdin

	// Run reports errors on stderr itself.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when the URL list is "-".
	Stdin io.Reader

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// Transport, when set, replaces the HTTP fetcher's round tripper.
	Transport http.RoundTripper

	// Summarizer and BatchSummarizer, when set, replace the Gemini
	// services for end-to-end testing.
	Summarizer      insight.Summarizer
	BatchSummarizer insight.BatchSummarizer

	// ConfigPaths are the YAML files consulted for flag defaults.
	ConfigPaths []string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv:      os.Getenv,
		ConfigPaths: defaultConfigPaths(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("insight"),
		kong.Description("Compare the content of competitor pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(yaml.Loader, m.ConfigPaths...),
		kong.Vars{
			"default_user_agent": insight.DefaultUserAgent,
			"default_model":      insight.DefaultModel,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to create parser: %v\n", err)
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		fmt.Fprintln(stderr, "error: no command specified")
		return fmt.Errorf("no command specified. Run 'insight --help' to see available commands")
	}
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", errorText(err))
		return err
	}

	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	deps := &Dependencies{
		Ctx:             ctx,
		Stdin:           m.Stdin,
		Stdout:          stdout,
		Stderr:          stderr,
		Logger:          newLogger(stderr, cli.Verbose),
		APIKey:          getenv("GEMINI_API_KEY"),
		Transport:       m.Transport,
		Summarizer:      m.Summarizer,
		BatchSummarizer: m.BatchSummarizer,
	}

	return kongCtx.Run(deps)
}

// errorText returns the message of application errors and the full text
// of any other error.
func errorText(err error) string {
	if insight.ErrorCode(err) == insight.EINTERNAL {
		return err.Error()
	}
	return insight.ErrorMessage(err)
}

// newLogger returns a text logger on w when verbose is set, and a logger
// that discards everything otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultConfigPaths() []string {
	paths := []string{"insight.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "insight", "config.yaml"))
	}
	return paths
}
