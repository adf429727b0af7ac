// Package insight provides a CLI-based competitor content analysis tool.
// It fetches competitor pages, extracts their SEO-relevant structure,
// computes term frequencies and cross-document TF-IDF relevance, and asks
// a language model for a structured content outline of each page.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package insight
