// Package ocr turns newspaper PDFs into ordered text paragraphs.
package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/safety-cli/internal/config"
)

// Extractor extracts the text of each page of a PDF, in page order.
type Extractor interface {
	ExtractPages(ctx context.Context, pdfPath string) ([]string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "pdf", "":
		return NewPDFReader(), nil
	case "local":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "mistral":
		if cfg.MistralKey == "" {
			return nil, eris.New("ocr: mistral provider requires mistral_api_key")
		}
		return NewMistralOCR(cfg.MistralKey, cfg.MistralModel), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

// ExtractParagraphs runs ex on pdfPath and splits the pages into
// paragraphs longer than minChars.
func ExtractParagraphs(ctx context.Context, ex Extractor, pdfPath string, minChars int) ([]string, error) {
	pages, err := ex.ExtractPages(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	return SplitParagraphs(pages, minChars), nil
}
