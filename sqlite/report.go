package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/insight"
)

var _ insight.ReportStore = (*ReportStore)(nil)

// ReportStore implements insight.ReportStore using SQLite.
type ReportStore struct {
	db *DB
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db *DB) *ReportStore {
	return &ReportStore{db: db}
}

// SaveReport stores the report and all of its rows in one transaction.
func (s *ReportStore) SaveReport(ctx context.Context, r *insight.Report) error {
	if r.ID == "" {
		return insight.Errorf(insight.EINVALID, "report ID required")
	}

	diagnostics, err := json.Marshal(nonNil(r.Diagnostics))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, summary_mode, diagnostics)
		VALUES (?, ?, ?, ?)
	`, r.ID, r.CreatedAt.UTC().Format(time.RFC3339Nano), string(r.SummaryMode), string(diagnostics)); err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	for i, page := range r.Pages {
		if err := insertPage(ctx, tx, r.ID, i, page); err != nil {
			return err
		}
	}

	for i, term := range r.Relevance.Terms() {
		score, _ := r.Relevance.Score(term)
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO relevance (report_id, position, term, score) VALUES (?, ?, ?, ?)
		`, r.ID, i, term, score); err != nil {
			return fmt.Errorf("failed to insert relevance: %w", err)
		}
	}

	for i, sk := range r.Skipped {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO skipped (report_id, position, url, code, reason) VALUES (?, ?, ?, ?, ?)
		`, r.ID, i, sk.URL, sk.Code, sk.Reason); err != nil {
			return fmt.Errorf("failed to insert skipped: %w", err)
		}
	}

	return tx.Commit()
}

func insertPage(ctx context.Context, tx *sql.Tx, reportID string, pos int, page *insight.PageReport) error {
	rec := page.Record
	headings, err := json.Marshal(nonNil(rec.Headings))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (report_id, position, url, title, meta_description, headings, word_count,
			internal_links, external_links, language, content_hash, outline, context_tokens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, reportID, pos, rec.URL, rec.Title, rec.MetaDescription, string(headings), rec.WordCount,
		rec.InternalLinkCount, rec.ExternalLinkCount, rec.Language, rec.ContentHash,
		page.Outline, page.ContextTokens); err != nil {
		return fmt.Errorf("failed to insert page %s: %w", rec.URL, err)
	}

	for i, term := range page.Frequencies.Terms() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO terms (report_id, page_position, position, term, count) VALUES (?, ?, ?, ?, ?)
		`, reportID, pos, i, term, page.Frequencies.Count(term)); err != nil {
			return fmt.Errorf("failed to insert terms for %s: %w", rec.URL, err)
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
