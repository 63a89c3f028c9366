package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fadilmartias/cv-matcher/internal/config"
	"github.com/fadilmartias/cv-matcher/internal/util"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

var ErrNoPDFText = errors.New("no text content found in PDF")

// PDFExtractor turns an uploaded PDF into plain text.
type PDFExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

func NewPDFExtractor(cfg *config.ExtractorConfig) (PDFExtractor, error) {
	switch cfg.Kind {
	case config.ExtractorFitz:
		return &FitzExtractor{
			OCREnabled: cfg.OCREnabled,
			OCR:        util.OCROptions{Language: cfg.OCRLanguage, Binary: cfg.TesseractBin},
		}, nil
	case config.ExtractorNative:
		return &NativeExtractor{}, nil
	default:
		return nil, fmt.Errorf("unknown pdf extractor %q", cfg.Kind)
	}
}

// FitzExtractor reads the text layer through MuPDF and optionally falls back to OCR.
type FitzExtractor struct {
	OCREnabled bool
	OCR        util.OCROptions
}

func (e *FitzExtractor) ExtractText(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			util.LoggerFromContext(ctx).Warn("pdf page skipped", slog.Int("page", n+1), slog.Any("error", err))
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	text := util.CleanText(sb.String())
	if text != "" {
		return text, nil
	}
	if !e.OCREnabled {
		return "", ErrNoPDFText
	}

	util.LoggerFromContext(ctx).Info("pdf has no text layer, running ocr", slog.Int("pages", doc.NumPage()))
	text, err = util.ExtractPDFOCR(ctx, doc, e.OCR)
	if err != nil {
		return "", err
	}
	return util.CleanText(text), nil
}

// NativeExtractor is a pure Go extractor for builds without cgo.
type NativeExtractor struct{}

func (e *NativeExtractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	// the parser panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var sb strings.Builder
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			util.LoggerFromContext(ctx).Warn("pdf page skipped", slog.Int("page", pageIndex), slog.Any("error", err))
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	text = util.CleanText(sb.String())
	if text == "" {
		return "", ErrNoPDFText
	}
	return text, nil
}
