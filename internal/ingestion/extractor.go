// Package ingestion reads ballot face templates into cleaned text and scans it for metadata.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsawler/tabula"
)

// Extractor pulls positionally ordered raw text out of one source document.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// PDFExtractor extracts text from PDF ballot templates.
type PDFExtractor struct {
	// ByColumn reads each column top to bottom before moving right. Ballot faces are laid
	// out in columns, so this keeps a lone candidate directly after its position header.
	ByColumn bool

	// OnWarning receives the non-fatal warnings tabula reports for a document. Nil discards them.
	OnWarning func(path, message string)
}

// NewPDFExtractor returns a PDFExtractor using column reading order.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{ByColumn: true}
}

// Extract implements Extractor.
func (e *PDFExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := tabula.Open(path)
	if e.ByColumn {
		ext = ext.ByColumn()
	}

	text, warnings, err := ext.Text()
	if err != nil {
		return "", &ExtractError{
			Path:    path,
			Message: "failed to extract PDF text",
			Cause:   err,
		}
	}
	forwardWarnings(path, warnings, e.OnWarning)
	return text, nil
}

func forwardWarnings[W any](path string, warnings []W, fn func(path, message string)) {
	if fn == nil {
		return
	}
	for _, w := range warnings {
		fn(path, fmt.Sprint(w))
	}
}

// PlainTextExtractor reads text that was already extracted, e.g. saved by the extract-text command.
type PlainTextExtractor struct{}

// Extract implements Extractor.
func (PlainTextExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractError{
			Path:    path,
			Message: "failed to read file",
			Cause:   err,
		}
	}
	return string(content), nil
}

// ExtractorFor picks an extractor based on the file extension.
func ExtractorFor(path string) (Extractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFExtractor(), nil
	case ".txt", ".text":
		return PlainTextExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported document type: %q", filepath.Ext(path))
	}
}

// ExtensionExtractor dispatches to ExtractorFor on every call.
type ExtensionExtractor struct {
	// PDF overrides the extractor used for .pdf files when set.
	PDF Extractor
}

// Extract implements Extractor.
func (e ExtensionExtractor) Extract(ctx context.Context, path string) (string, error) {
	if e.PDF != nil && strings.EqualFold(filepath.Ext(path), ".pdf") {
		return e.PDF.Extract(ctx, path)
	}
	extractor, err := ExtractorFor(path)
	if err != nil {
		return "", &ExtractError{Path: path, Message: "no extractor", Cause: err}
	}
	return extractor.Extract(ctx, path)
}

// IngestFromFile extracts and cleans one document and returns the text with its source info.
func IngestFromFile(ctx context.Context, extractor Extractor, path string) (string, *SourceInfo, error) {
	raw, err := extractor.Extract(ctx, path)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(raw)
	return cleaned, NewSourceInfo(path, cleaned), nil
}
