package util

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// OCROptions configures the tesseract fallback.
type OCROptions struct {
	Language string
	Binary   string
}

// ExtractPDFOCR renders every page of doc and runs tesseract on it.
// Used for scanned PDFs that carry no text layer.
func ExtractPDFOCR(ctx context.Context, doc *fitz.Document, opts OCROptions) (string, error) {
	logger := LoggerFromContext(ctx)
	if opts.Binary == "" {
		opts.Binary = "tesseract"
	}
	if opts.Language == "" {
		opts.Language = "eng"
	}
	if err := checkTesseract(ctx, opts.Binary); err != nil {
		return "", fmt.Errorf("tesseract check failed: %w", err)
	}

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			logger.Warn("ocr page skipped", slog.Any("error", lastErr))
			continue
		}

		pageText, err := ocrImage(ctx, img, opts)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			logger.Warn("ocr page skipped", slog.Any("error", lastErr))
			continue
		}

		logger.Debug("ocr page done", slog.Int("page", n+1), slog.Int("chars", len(pageText)))
		if len(pageText) > 0 {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if len(result) == 0 {
		if lastErr != nil {
			return "", fmt.Errorf("failed to extract text via OCR: %w", lastErr)
		}
		return "", fmt.Errorf("no text extracted from PDF (PDF might be empty or images are unreadable)")
	}
	return result, nil
}

func ocrImage(ctx context.Context, img image.Image, opts OCROptions) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(tmpPath)

	if err := savePNG(tmpPath, img); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, opts.Binary, tmpPath, "stdout", "-l", opts.Language)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}

func checkTesseract(ctx context.Context, bin string) error {
	out, err := exec.CommandContext(ctx, bin, "-v").CombinedOutput()
	if err != nil {
		return fmt.Errorf("tesseract not found or not executable: %w\nOutput: %s", err, string(out))
	}
	LoggerFromContext(ctx).Debug("tesseract available", slog.String("version", strings.Split(string(out), "\n")[0]))
	return nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
