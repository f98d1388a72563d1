package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text_trans_api/pkg/docx"
	"text_trans_api/pkg/storage"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// Plain-text extraction for the three supported upload formats.

var ErrUnsupportedType = fmt.Errorf("unsupported file type")

// FromURL fetches a previously uploaded file and extracts its text.
func FromURL(ctx context.Context, fileURL string, fileType string) (string, error) {
	if !IsSupportedType(fileType) {
		return "", ErrUnsupportedType
	}

	data, err := storage.FetchURL(ctx, fileURL)
	if err != nil {
		return "", err
	}

	return FromBytes(data, fileType)
}

func IsSupportedType(fileType string) bool {
	switch fileType {
	case "pdf", "docx", "txt":
		return true
	}
	return false
}

func FromBytes(data []byte, fileType string) (string, error) {
	switch fileType {
	case "pdf":
		return pdfText(data)
	case "docx":
		return docx.ExtractText(data)
	case "txt":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text file is not valid UTF-8")
		}
		return string(data), nil
	default:
		return "", ErrUnsupportedType
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages that fail to decode are skipped rather than
			// failing the whole document.
			continue
		}
		out.WriteString(text)
		out.WriteString("\n")
	}

	return strings.TrimSpace(out.String()), nil
}
