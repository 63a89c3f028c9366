package handler

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"github.com/fadilmartias/cv-matcher/internal/dto"
)

const pdfMIME = "application/pdf"

var uploadFields = []string{dto.FieldCV, dto.FieldJobDescription}

type uploadError struct {
	status  int
	message string
}

func (e *uploadError) Error() string { return e.message }

func rejectUpload(status int, format string, args ...any) *uploadError {
	return &uploadError{status: status, message: fmt.Sprintf(format, args...)}
}

// readUploads accepts exactly one cv and one job_description PDF and nothing else.
// Rejections are returned as *uploadError.
func readUploads(c *fiber.Ctx, maxBytes int64) (cv, jobDescription dto.UploadedDocument, err error) {
	form, ferr := c.MultipartForm()
	if ferr != nil {
		return cv, jobDescription, rejectUpload(fiber.StatusBadRequest,
			"Request must be multipart/form-data with %q and %q PDF files", dto.FieldCV, dto.FieldJobDescription)
	}

	for _, field := range uploadFields {
		switch n := len(form.File[field]); {
		case n == 0:
			return cv, jobDescription, rejectUpload(fiber.StatusBadRequest, "The %s PDF is required in field %q", dto.Label(field), field)
		case n > 1:
			return cv, jobDescription, rejectUpload(fiber.StatusBadRequest, "Only one %s PDF is allowed in field %q", dto.Label(field), field)
		}
	}
	for field, files := range form.File {
		if field != dto.FieldCV && field != dto.FieldJobDescription && len(files) > 0 {
			return cv, jobDescription, rejectUpload(fiber.StatusBadRequest,
				"Unexpected file in field %q, only %q and %q are accepted", field, dto.FieldCV, dto.FieldJobDescription)
		}
	}

	docs := make([]dto.UploadedDocument, 0, len(uploadFields))
	for _, field := range uploadFields {
		doc, uerr := readPDF(form.File[field][0], field, maxBytes)
		if uerr != nil {
			return cv, jobDescription, uerr
		}
		docs = append(docs, doc)
	}
	return docs[0], docs[1], nil
}

func readPDF(fh *multipart.FileHeader, field string, maxBytes int64) (dto.UploadedDocument, *uploadError) {
	label := dto.Label(field)
	if fh.Size > maxBytes {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusRequestEntityTooLarge,
			"The %s PDF is larger than the %s limit", label, formatBytes(maxBytes))
	}

	mediaType, _, err := mime.ParseMediaType(fh.Header.Get(fiber.HeaderContentType))
	if err != nil || mediaType != pdfMIME {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusUnsupportedMediaType, "The %s must be a PDF file", label)
	}

	f, err := fh.Open()
	if err != nil {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusBadRequest, "Could not read the uploaded %s file", label)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusBadRequest, "Could not read the uploaded %s file", label)
	}
	if int64(len(data)) > maxBytes {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusRequestEntityTooLarge,
			"The %s PDF is larger than the %s limit", label, formatBytes(maxBytes))
	}
	if !mimetype.Detect(data).Is(pdfMIME) {
		return dto.UploadedDocument{}, rejectUpload(fiber.StatusUnsupportedMediaType, "The %s file content is not a PDF", label)
	}

	return dto.UploadedDocument{Field: field, Filename: fh.Filename, Data: data}, nil
}

func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	return fmt.Sprintf("%d bytes", n)
}
