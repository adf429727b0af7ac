// Package analysis orchestrates a competitor content analysis run. It
// coordinates fetching, extraction, lexical analysis, relevance scoring and
// summarization of a list of URLs into a single report.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/insight"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pipeline runs the analysis of competitor pages.
//
// Fetcher, Extractor, Analyzer, Scorer and Stopwords are required. Content
// and Converter enable main-content Markdown and must be set together.
// Detector is required when the stopword locale is insight.LocaleAuto.
// Summarizer or BatchSummarizer is required by the matching summary mode.
type Pipeline struct {
	Fetcher         insight.Fetcher
	Extractor       insight.Extractor
	Content         insight.ContentExtractor
	Converter       insight.Converter
	Analyzer        insight.Analyzer
	Scorer          insight.Scorer
	Detector        insight.LanguageDetector
	Summarizer      insight.Summarizer
	BatchSummarizer insight.BatchSummarizer
	TokenCounter    insight.TokenCounter

	// Stopwords returns the stopword set of a locale.
	Stopwords func(locale string) (insight.StopwordSet, error)

	Config insight.Config

	// Now returns the report timestamp. Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during an analysis run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSummarizing
	ProgressFinished
)

// ProgressFunc is a callback for reporting analysis progress.
type ProgressFunc func(event ProgressEvent)

// fallbackLocale is used when automatic language detection fails.
const fallbackLocale = insight.DefaultStopwordLocale

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position   int
	url        string
	record     *insight.PageRecord
	diagnostic string
	err        error
}

// Run analyzes urls and returns the assembled report.
//
// Blank lines are dropped and the rest trimmed. Returns EINSUFFICIENT
// before any fetch if fewer than Config.MinURLCount URLs remain. URLs that
// cannot be fetched or parsed are recorded as skipped. If none survive,
// the partial report is returned together with EINSUFFICIENT.
//
// Canceling ctx stops new fetches; the run completes with the records
// gathered so far and notes the interruption in the report diagnostics.
func (p *Pipeline) Run(ctx context.Context, urls []string, progress ProgressFunc) (*insight.Report, error) {
	urls = CleanURLs(urls)
	if minURLs := p.Config.MinURLCount; len(urls) < minURLs {
		return nil, insight.Errorf(insight.EINSUFFICIENT, "at least %d URLs required, got %d", minURLs, len(urls))
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	var baseStopwords insight.StopwordSet
	if p.Config.StopwordLocale != insight.LocaleAuto {
		set, err := p.Stopwords(p.Config.StopwordLocale)
		if err != nil {
			return nil, err
		}
		baseStopwords = set
	}

	results := p.fetchAll(ctx, urls, progress)

	report := &insight.Report{
		ID:          uuid.NewString(),
		CreatedAt:   p.now(),
		SummaryMode: p.Config.SummaryMode,
	}

	var records []*insight.PageRecord
	var diagnostics []string
	for _, r := range results {
		if r.diagnostic != "" {
			diagnostics = append(diagnostics, r.diagnostic)
		}
		if r.err != nil {
			report.Skipped = append(report.Skipped, insight.NewSkipped(r.url, r.err))
			continue
		}
		records = append(records, r.record)
	}

	canceled := ctx.Err() != nil
	if canceled {
		diagnostics = append(diagnostics, fmt.Sprintf("analysis canceled: %d of %d URLs analyzed", len(records), len(urls)))
	}

	if len(records) == 0 {
		report.Pages = []*insight.PageReport{}
		report.Frequencies = insight.NewFrequencyTable()
		report.Relevance = insight.NewRelevanceTable()
		report.Diagnostics = diagnostics
		p.finish(progress, len(urls))
		return report, insight.Errorf(insight.EINSUFFICIENT, "no page could be analyzed (%d skipped)", len(report.Skipped))
	}

	// Lexical analysis runs after every fetch has joined, so the tables
	// below are built by this goroutine alone.
	pageStopwords, unionStopwords, stopDiags := p.resolveStopwords(records, baseStopwords)
	diagnostics = append(diagnostics, stopDiags...)

	freqs := make([]*insight.FrequencyTable, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		freqs[i] = insight.Frequencies(p.Analyzer, rec.RawText, pageStopwords[i])
		texts[i] = rec.RawText
	}

	relevance, err := p.Scorer.Score(texts, unionStopwords)
	if err != nil {
		return nil, fmt.Errorf("relevance scoring: %w", err)
	}

	var outlines []string
	var tokens []int
	if p.summarizing() {
		if canceled {
			diagnostics = append(diagnostics, "summarization skipped: analysis canceled")
		} else {
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSummarizing, Completed: len(urls), Total: len(urls)})
			}
			contexts := make([]string, len(records))
			for i, rec := range records {
				contexts[i] = insight.FormatSummaryContext(rec)
			}
			tokens = p.countTokens(ctx, contexts)

			var sumDiags []string
			outlines, sumDiags = p.summarize(ctx, records, contexts)
			diagnostics = append(diagnostics, sumDiags...)
		}
	}

	assembled := insight.AssemblePages(records, freqs, outlines)
	for i, page := range assembled.Pages {
		if i < len(tokens) {
			page.ContextTokens = tokens[i]
		}
	}
	report.Pages = assembled.Pages
	report.Frequencies = assembled.Frequencies
	report.Relevance = relevance
	report.Diagnostics = diagnostics

	p.finish(progress, len(urls))
	return report, nil
}

// CleanURLs trims each URL and drops blank entries, keeping order.
func CleanURLs(urls []string) []string {
	cleaned := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	return cleaned
}

// summarizing reports whether the summary mode requests outlines.
func (p *Pipeline) summarizing() bool {
	return p.Config.SummaryMode == insight.SummaryPerDocument || p.Config.SummaryMode == insight.SummaryBatch
}

func (p *Pipeline) validate() error {
	if p.Content != nil && p.Converter == nil {
		return insight.Errorf(insight.EINVALID, "main content extraction requires a converter")
	}
	if p.Config.StopwordLocale == insight.LocaleAuto && p.Detector == nil {
		return insight.Errorf(insight.EINVALID, "automatic stopword locale requires a language detector")
	}
	switch p.Config.SummaryMode {
	case insight.SummaryPerDocument:
		if p.Summarizer == nil {
			return insight.Errorf(insight.EINVALID, "per-document summary mode requires a summarizer")
		}
	case insight.SummaryBatch:
		if p.BatchSummarizer == nil {
			return insight.Errorf(insight.EINVALID, "batch summary mode requires a batch summarizer")
		}
	}
	return nil
}

// fetchAll fetches and extracts urls concurrently and returns the results
// in input order.
func (p *Pipeline) fetchAll(ctx context.Context, urls []string, progress ProgressFunc) []pageResult {
	concurrency := p.Config.Concurrency
	if concurrency <= 0 {
		concurrency = insight.DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			if gctx.Err() != nil {
				resultCh <- pageResult{
					position: i,
					url:      url,
					err:      insight.Errorf(insight.EFETCH, "not fetched: analysis canceled"),
				}
				continue
			}
			g.Go(func() error {
				resultCh <- p.processURL(gctx, i, url)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, total)
	var completed int
	for result := range resultCh {
		completed++
		results[result.position] = result

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: completed,
			Total:     total,
			URL:       result.url,
		}
		if result.err != nil {
			event.Type = ProgressFailed
			event.Error = result.err
		}
		progress(event)
	}
	return results
}

// processURL fetches and extracts a single URL.
func (p *Pipeline) processURL(ctx context.Context, position int, url string) pageResult {
	result := pageResult{
		position: position,
		url:      url,
	}

	html, err := p.Fetcher.Fetch(ctx, url)
	if err != nil {
		result.err = err
		return result
	}

	rec, err := p.Extractor.Extract(&insight.RawPage{URL: url, HTML: html})
	if err != nil {
		result.err = err
		return result
	}

	if p.Content != nil {
		md, err := p.mainContent(html)
		if err != nil {
			result.diagnostic = fmt.Sprintf("main content unavailable for %s: %s", url, insight.ErrorMessage(err))
		}
		rec.ContentMarkdown = md
	}

	result.record = rec
	return result
}

func (p *Pipeline) mainContent(html string) (string, error) {
	extracted, err := p.Content.Extract(html)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(extracted.ContentHTML) == "" {
		return "", insight.Errorf(insight.EPARSE, "no main content found")
	}
	return p.Converter.Convert(extracted.ContentHTML)
}

// resolveStopwords returns the stopword set of each record and the union
// used for cross-document scoring. With a fixed locale every record shares
// base. With automatic detection each record uses its detected language,
// falling back to English.
func (p *Pipeline) resolveStopwords(records []*insight.PageRecord, base insight.StopwordSet) ([]insight.StopwordSet, insight.StopwordSet, []string) {
	sets := make([]insight.StopwordSet, len(records))
	if p.Config.StopwordLocale != insight.LocaleAuto {
		for i := range records {
			sets[i] = base
		}
		return sets, base, nil
	}

	var diagnostics []string
	byLocale := make(map[string]insight.StopwordSet)
	for i, rec := range records {
		locale, ok := p.Detector.Detect(rec.RawText)
		if ok {
			rec.Language = locale
		} else {
			locale = fallbackLocale
		}

		set, cached := byLocale[locale]
		if !cached {
			var err error
			set, err = p.Stopwords(locale)
			if err != nil {
				diagnostics = append(diagnostics, fmt.Sprintf("no stopwords for detected language %q of %s, using %q", locale, rec.URL, fallbackLocale))
				set, err = p.Stopwords(fallbackLocale)
				if err != nil {
					set = insight.NewStopwordSet()
				}
			}
			byLocale[locale] = set
		}
		sets[i] = set
	}

	union := make([]insight.StopwordSet, 0, len(byLocale))
	for _, s := range byLocale {
		union = append(union, s)
	}
	return sets, insight.UnionStopwords(union...), diagnostics
}

// summarize requests outlines according to the configured mode. Failures
// leave outlines empty and are reported as diagnostics.
func (p *Pipeline) summarize(ctx context.Context, records []*insight.PageRecord, contexts []string) ([]string, []string) {
	switch p.Config.SummaryMode {
	case insight.SummaryBatch:
		outlines, err := p.BatchSummarizer.SummarizeBatch(ctx, contexts)
		if err == nil {
			var aligned []string
			if aligned, err = insight.OutlinesFromBatch(records, outlines); err == nil {
				return aligned, nil
			}
		}
		return nil, []string{fmt.Sprintf("batch summarization failed, all %d outlines are empty: %s", len(records), insight.ErrorMessage(err))}

	case insight.SummaryPerDocument:
		results := make([]string, len(records))
		errs := make([]error, len(records))

		concurrency := p.Config.Concurrency
		if concurrency <= 0 {
			concurrency = insight.DefaultConcurrency
		}
		var g errgroup.Group
		g.SetLimit(concurrency)
		for i := range records {
			g.Go(func() error {
				results[i], errs[i] = p.Summarizer.Summarize(ctx, contexts[i])
				return nil
			})
		}
		_ = g.Wait()

		var diagnostics []string
		for i, rec := range records {
			if errs[i] != nil {
				results[i] = ""
				diagnostics = append(diagnostics, fmt.Sprintf("outline unavailable for %s: %s", rec.URL, insight.ErrorMessage(errs[i])))
			}
		}
		return results, diagnostics
	}
	return nil, nil
}

// countTokens returns the token size of each context, or nil without a
// TokenCounter. Counting failures leave a zero.
func (p *Pipeline) countTokens(ctx context.Context, contexts []string) []int {
	if p.TokenCounter == nil {
		return nil
	}
	counts := make([]int, len(contexts))
	for i, c := range contexts {
		if n, err := p.TokenCounter.CountTokens(ctx, c); err == nil {
			counts[i] = n
		}
	}
	return counts
}

func (p *Pipeline) finish(progress ProgressFunc, total int) {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
