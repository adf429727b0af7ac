package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/analysis"
	insightetree "github.com/fwojciec/insight/etree"
	insightxlsx "github.com/fwojciec/insight/excelize"
	"github.com/fwojciec/insight/fs"
	"github.com/fwojciec/insight/gemini"
	"github.com/fwojciec/insight/goquery"
	"github.com/fwojciec/insight/htmltomarkdown"
	insighthttp "github.com/fwojciec/insight/http"
	"github.com/fwojciec/insight/lingua"
	"github.com/fwojciec/insight/lru"
	"github.com/fwojciec/insight/readability"
	"github.com/fwojciec/insight/rod"
	islog "github.com/fwojciec/insight/slog"
	"github.com/fwojciec/insight/sqlite"
	"github.com/fwojciec/insight/stopwords"
	"github.com/fwojciec/insight/tfidf"
	"github.com/fwojciec/insight/trafilatura"
	"github.com/fwojciec/insight/uniseg"
	"google.golang.org/genai"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	urls, err := c.urls(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	p, closeFn, err := c.pipeline(deps, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}
	defer closeFn()

	progress := func(event analysis.ProgressEvent) {
		switch event.Type {
		case analysis.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "  Analyzing %d URLs\n", event.Total)
		case analysis.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, errorText(event.Error))
		case analysis.ProgressSummarizing:
			fmt.Fprintf(deps.Stderr, "  Requesting outlines for %d pages\n", event.Total)
		case analysis.ProgressFinished:
			// Summary printed after the report
		}
	}

	report, err := p.Run(deps.Ctx, urls, progress)
	if err != nil {
		if report != nil {
			printDiagnostics(deps.Stderr, report)
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	if err := printReport(deps.Stdout, report, cfg.TopKTerms); err != nil {
		return err
	}

	if err := c.export(deps, report, cfg.TopKTerms); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "  Analyzed %d of %d URLs (report %s)\n",
		len(report.Pages), len(report.Pages)+len(report.Skipped), report.ID)
	return nil
}

// config maps the flags onto an insight.Config.
func (c *AnalyzeCmd) config() insight.Config {
	cfg := insight.Config{
		RequestTimeout:    c.RequestTimeout,
		MinURLCount:       c.MinURLCount,
		StopwordLocale:    c.StopwordLocale,
		TopKTerms:         c.TopKTerms,
		ParagraphOnlyText: c.ParagraphOnlyText,
		Concurrency:       c.Concurrency,
		SummaryMode:       insight.SummaryMode(c.SummaryMode),
		LinkPolicy:        insight.LinkPolicy(c.LinkMode),
		UserAgent:         c.UserAgent,
		CacheSize:         c.CacheSize,
		Model:             c.Model,
		Browser:           c.Browser,
		MainContent:       c.MainContent,
	}
	if cfg.MainContent == "none" {
		cfg.MainContent = insight.MainContentNone
	}
	return cfg
}

// urls returns the positional URLs followed by those read from --input.
func (c *AnalyzeCmd) urls(stdin io.Reader) ([]string, error) {
	urls := append([]string(nil), c.URLs...)
	if c.Input == "" {
		return urls, nil
	}

	var r io.Reader
	if c.Input == "-" {
		if stdin == nil {
			return nil, insight.Errorf(insight.EINVALID, "no standard input to read URLs from")
		}
		r = stdin
	} else {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, insight.Errorf(insight.EINVALID, "open URL list: %v", err)
		}
		defer f.Close()
		r = f
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		urls = append(urls, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, insight.Errorf(insight.EINVALID, "read URL list: %v", err)
	}
	return urls, nil
}

// pipeline wires the analysis services selected by cfg. The returned
// function releases the fetcher.
func (c *AnalyzeCmd) pipeline(deps *Dependencies, cfg insight.Config) (*analysis.Pipeline, func(), error) {
	fetcher, err := newFetcher(deps, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { _ = fetcher.Close() }

	p := &analysis.Pipeline{
		Fetcher: fetcher,
		Extractor: islog.NewLoggingExtractor(goquery.NewExtractor(
			goquery.WithTextPolicy(cfg.TextPolicy()),
			goquery.WithLinkPolicy(cfg.LinkPolicy),
		), deps.Logger),
		Analyzer:  uniseg.NewAnalyzer(),
		Stopwords: stopwords.ForLocale,
		Config:    cfg,
	}
	p.Scorer = tfidf.NewScorer(p.Analyzer)

	switch cfg.MainContent {
	case insight.MainContentTrafilatura:
		p.Content = trafilatura.NewExtractor()
		p.Converter = htmltomarkdown.NewConverter()
	case insight.MainContentReadability:
		p.Content = readability.NewExtractor()
		p.Converter = htmltomarkdown.NewConverter()
	}

	if cfg.StopwordLocale == insight.LocaleAuto {
		p.Detector = lingua.NewDetector()
	}

	if cfg.SummaryMode != insight.SummaryOff {
		summarizer, batch, err := newSummarizers(deps, cfg)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		logging := islog.NewLoggingSummarizer(summarizer, batch, deps.Logger)
		if summarizer != nil {
			p.Summarizer = logging
		}
		if batch != nil {
			p.BatchSummarizer = logging
		}
	}

	if c.CountTokens {
		tc, err := gemini.NewTokenCounter(cfg.Model)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		p.TokenCounter = tc
	}

	return p, closeFn, nil
}

// newFetcher builds the fetch chain: HTTP or browser, then the per-run
// cache, then logging.
func newFetcher(deps *Dependencies, cfg insight.Config) (insight.Fetcher, error) {
	var base insight.Fetcher
	if cfg.Browser {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cfg.RequestTimeout), rod.WithUserAgent(cfg.UserAgent))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, err
		}
		base = f
	} else {
		opts := []insighthttp.Option{
			insighthttp.WithTimeout(cfg.RequestTimeout),
			insighthttp.WithUserAgent(cfg.UserAgent),
		}
		if deps.Transport != nil {
			opts = append(opts, insighthttp.WithTransport(deps.Transport))
		}
		base = insighthttp.NewFetcher(opts...)
	}

	fetcher := base
	if cfg.CacheSize > 0 {
		cached, err := lru.NewFetcher(base, cfg.CacheSize)
		if err != nil {
			_ = base.Close()
			return nil, err
		}
		fetcher = cached
	}
	return islog.NewLoggingFetcher(fetcher, deps.Logger), nil
}

// newSummarizers returns the injected services or Gemini clients.
func newSummarizers(deps *Dependencies, cfg insight.Config) (insight.Summarizer, insight.BatchSummarizer, error) {
	if deps.Summarizer != nil || deps.BatchSummarizer != nil {
		return deps.Summarizer, deps.BatchSummarizer, nil
	}

	if deps.APIKey == "" {
		fmt.Fprintln(deps.Stderr, "Hint: get an API key at https://aistudio.google.com/apikey or use --summary-mode=off")
		return nil, nil, insight.Errorf(insight.EINVALID, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(deps.Ctx, &genai.ClientConfig{
		APIKey:  deps.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, nil, insight.Errorf(insight.ESERVICE, "failed to connect to Gemini API: %v", err)
	}

	s := gemini.NewSummarizer(client, cfg.Model)
	return s, s, nil
}

// export writes every requested export of report.
func (c *AnalyzeCmd) export(deps *Dependencies, report *insight.Report, topK int) error {
	files := []struct {
		path string
		enc  insight.ReportEncoder
	}{
		{c.CSV, fs.CSVEncoder{}},
		{c.Text, fs.TextEncoder{TopK: topK}},
		{c.JSON, fs.JSONEncoder{}},
		{c.DOCX, insightetree.DocxEncoder{TopK: topK}},
		{c.XLSX, insightxlsx.Encoder{}},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if err := fs.WriteReport(f.path, f.enc, report); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "  Wrote %s\n", f.path)
	}

	if c.Outlines != "" {
		n, err := fs.NewWriter(c.Outlines).WriteOutlines(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "  Wrote %d outlines to %s\n", n, c.Outlines)
	}

	if c.SQLite != "" {
		db := sqlite.NewDB(c.SQLite)
		if err := db.Open(); err != nil {
			return err
		}
		defer db.Close()
		if err := sqlite.NewReportStore(db).SaveReport(deps.Ctx, report); err != nil {
			return err
		}
		fmt.Fprintf(deps.Stderr, "  Wrote report %s to %s\n", report.ID, c.SQLite)
	}
	return nil
}

func printDiagnostics(w io.Writer, r *insight.Report) {
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "  %s\n", strings.TrimSpace(d))
	}
}
