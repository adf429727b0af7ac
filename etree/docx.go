// Package etree exports analysis reports as Word documents. The document
// parts are built as XML trees and packaged into an OOXML zip archive.
package etree

import (
	"archive/zip"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/insight"
)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	relOfficeDoc    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	ctDocumentMain  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctRelationships = "application/vnd.openxmlformats-package.relationships+xml"
)

// DocumentPath is the location of the main document part in the archive.
const DocumentPath = "word/document.xml"

var _ insight.ReportEncoder = (*DocxEncoder)(nil)

// DocxEncoder writes a report as a .docx file with one section per page.
type DocxEncoder struct {
	// TopK is the number of top terms listed per page.
	// Defaults to insight.DefaultTopKTerms.
	TopK int
}

// Encode writes the document archive to w.
func (e DocxEncoder) Encode(w io.Writer, r *insight.Report) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name string
		doc  *etree.Document
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{DocumentPath, e.document(r)},
	}
	for _, part := range parts {
		fw, err := zw.Create(part.name)
		if err != nil {
			return insight.Errorf(insight.EINTERNAL, "docx: %v", err)
		}
		if _, err := part.doc.WriteTo(fw); err != nil {
			return insight.Errorf(insight.EINTERNAL, "docx: %v", err)
		}
	}

	if err := zw.Close(); err != nil {
		return insight.Errorf(insight.EINTERNAL, "docx: %v", err)
	}
	return nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func contentTypes() *etree.Document {
	doc := newDocument()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)

	def := types.CreateElement("Default")
	def.CreateAttr("Extension", "rels")
	def.CreateAttr("ContentType", ctRelationships)

	def = types.CreateElement("Default")
	def.CreateAttr("Extension", "xml")
	def.CreateAttr("ContentType", "application/xml")

	override := types.CreateElement("Override")
	override.CreateAttr("PartName", "/"+DocumentPath)
	override.CreateAttr("ContentType", ctDocumentMain)
	return doc
}

func packageRels() *etree.Document {
	doc := newDocument()
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsPackageRels)

	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", relOfficeDoc)
	rel.CreateAttr("Target", DocumentPath)
	return doc
}

func (e DocxEncoder) document(r *insight.Report) *etree.Document {
	topK := e.TopK
	if topK <= 0 {
		topK = insight.DefaultTopKTerms
	}

	doc := newDocument()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsMain)
	body := root.CreateElement("w:body")

	heading(body, "Competitor Analysis")
	for _, page := range r.Pages {
		rec := page.Record
		title := rec.Title
		if title == "" {
			title = rec.URL
		}
		heading(body, title)
		paragraph(body, "URL: "+rec.URL)
		paragraph(body, "Meta Description: "+rec.MetaDescription)
		paragraph(body, "Headers: "+insight.FormatHeadings(rec.Headings))
		paragraph(body, "Word Count: "+strconv.Itoa(rec.WordCount))
		paragraph(body, "Top Words: "+insight.FormatTerms(page.Frequencies.Top(topK)))
		if page.Outline != "" {
			paragraph(body, "Outline:")
			for _, line := range strings.Split(page.Outline, "\n") {
				paragraph(body, line)
			}
		}
	}

	if len(r.Skipped) > 0 {
		heading(body, "Skipped")
		for _, s := range r.Skipped {
			paragraph(body, s.URL+": "+s.Reason)
		}
	}
	if len(r.Diagnostics) > 0 {
		heading(body, "Diagnostics")
		for _, d := range r.Diagnostics {
			paragraph(body, d)
		}
	}
	return doc
}

func heading(body *etree.Element, text string) {
	p := body.CreateElement("w:p")
	run := p.CreateElement("w:r")
	props := run.CreateElement("w:rPr")
	props.CreateElement("w:b")
	props.CreateElement("w:sz").CreateAttr("w:val", "32")
	textElement(run, text)
}

func paragraph(body *etree.Element, text string) {
	p := body.CreateElement("w:p")
	textElement(p.CreateElement("w:r"), text)
}

func textElement(run *etree.Element, text string) {
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(xmlText(text))
}

// xmlText drops control characters that XML 1.0 cannot represent.
func xmlText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}
