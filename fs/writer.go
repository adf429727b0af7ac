package fs

import (
	"bytes"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/insight"
	"gopkg.in/yaml.v3"
)

// WriteReport encodes r with enc into the file at path. The file is
// written to a temporary sibling and renamed into place. A failed export
// leaves no file behind.
func WriteReport(path string, enc insight.ReportEncoder, r *insight.Report) error {
	var buf bytes.Buffer
	if err := enc.Encode(&buf, r); err != nil {
		return insight.Errorf(insight.EINTERNAL, "encode %s: %v", filepath.Base(path), err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// URLToPath converts a competitor URL to a relative Markdown file path
// rooted at the host, so pages from different sites never collide. Dot
// segments are resolved against the root, so the result never leaves the
// host directory.
// Example: https://shop.example/guides/shoes → shop.example/guides/shoes.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", insight.Errorf(insight.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", insight.Errorf(insight.EINVALID, "URL %q has no host", rawURL)
	}

	host := strings.ReplaceAll(u.Host, ":", "_")
	if host == "." || host == ".." || strings.ContainsAny(host, `/\`) {
		return "", insight.Errorf(insight.EINVALID, "URL %q has an unusable host", rawURL)
	}

	p := strings.TrimPrefix(path.Clean("/"+u.Path), "/")
	switch {
	case p == "":
		return host + "/index.md", nil
	case strings.HasSuffix(u.Path, "/"):
		return host + "/" + p + "/index.md", nil
	default:
		return host + "/" + p + ".md", nil
	}
}

// outlineFrontMatter is the YAML header of an outline file.
type outlineFrontMatter struct {
	URL       string `yaml:"url"`
	Title     string `yaml:"title"`
	WordCount int    `yaml:"word_count"`
	Analyzed  string `yaml:"analyzed"`
	Language  string `yaml:"language,omitempty"`
}

// FormatOutline formats a page outline with YAML front matter.
func FormatOutline(page *insight.PageReport, analyzed time.Time) (string, error) {
	fm, err := yaml.Marshal(outlineFrontMatter{
		URL:       page.Record.URL,
		Title:     page.Record.Title,
		WordCount: page.Record.WordCount,
		Analyzed:  analyzed.Format("2006-01-02"),
		Language:  page.Record.Language,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(page.Outline)
	return b.String(), nil
}

// Writer writes page outlines as Markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteOutlines writes one file per page that has an outline and returns
// the number of files written.
func (w *Writer) WriteOutlines(r *insight.Report) (int, error) {
	var n int
	for _, page := range r.Pages {
		if page.Outline == "" {
			continue
		}

		relPath, err := URLToPath(page.Record.URL)
		if err != nil {
			return n, err
		}
		fullPath := filepath.Join(w.baseDir, relPath)
		if rel, err := filepath.Rel(w.baseDir, fullPath); err != nil || !filepath.IsLocal(rel) {
			return n, insight.Errorf(insight.EINVALID, "outline path for %s escapes %s", page.Record.URL, w.baseDir)
		}

		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return n, err
		}

		content, err := FormatOutline(page, r.CreatedAt)
		if err != nil {
			return n, err
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
