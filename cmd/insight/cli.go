package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/insight"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// APIKey authenticates Gemini requests.
	APIKey string

	Transport       http.RoundTripper
	Summarizer      insight.Summarizer
	BatchSummarizer insight.BatchSummarizer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"YAML configuration file"`
	Verbose bool            `short:"v" help:"Log every fetch, extraction and model call to stderr"`

	Analyze AnalyzeCmd `cmd:"" help:"Analyze competitor URLs"`
}

// AnalyzeCmd is the "analyze" subcommand. Flag names match the keys of
// the YAML configuration file with dashes in place of underscores.
type AnalyzeCmd struct {
	URLs  []string `arg:"" optional:"" name:"url" help:"Competitor URLs"`
	Input string   `short:"i" help:"Read URLs from a file, one per line (- for stdin)"`

	RequestTimeout    time.Duration `default:"10s" help:"Timeout per page fetch"`
	MinURLCount       int           `name:"min-url-count" default:"3" help:"Minimum number of URLs to analyze"`
	StopwordLocale    string        `default:"en" help:"Stopword locale, 'auto' to detect per page or 'none'"`
	TopKTerms         int           `name:"top-k-terms" default:"10" help:"Top terms shown per page"`
	ParagraphOnlyText bool          `default:"true" negatable:"" help:"Count words in paragraphs only"`
	Concurrency       int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	SummaryMode       string        `enum:"off,per-document,batch" default:"per-document" help:"Outline requests: off, per-document or batch"`
	LinkMode          string        `enum:"substring,host,domain" default:"substring" help:"Internal link classification"`
	UserAgent         string        `default:"${default_user_agent}" help:"User-Agent header for page fetches"`
	CacheSize         int           `default:"128" help:"Pages kept in the fetch cache (0 disables)"`
	Model             string        `default:"${default_model}" help:"Gemini model for outlines"`
	Browser           bool          `help:"Render pages in headless Chrome"`
	MainContent       string        `enum:"none,trafilatura,readability" default:"none" help:"Summarize main content Markdown extracted with this library"`
	CountTokens       bool          `help:"Report the token size of each summarization context"`

	CSV      string `name:"csv" placeholder:"PATH" help:"Write a CSV export"`
	Text     string `name:"txt" placeholder:"PATH" help:"Write a plain-text export"`
	JSON     string `name:"json" placeholder:"PATH" help:"Write a JSON export"`
	DOCX     string `name:"docx" placeholder:"PATH" help:"Write a Word export"`
	XLSX     string `name:"xlsx" placeholder:"PATH" help:"Write an Excel export"`
	SQLite   string `name:"sqlite" placeholder:"PATH" help:"Write the report to a SQLite database"`
	Outlines string `placeholder:"DIR" help:"Write each outline as a Markdown file under DIR"`
}
