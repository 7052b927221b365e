// Package extract turns uploaded resume files into plain text. Supported
// types are PDF, DOCX and plain text; everything else is rejected with a
// typed ExtractionError so the caller can explain the failure without
// attempting generation.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Kind classifies why an extraction failed.
type Kind string

// Extraction failure kinds.
const (
	KindUnsupported Kind = "unsupported"
	KindPassword    Kind = "password-protected"
	KindCorrupted   Kind = "corrupted"
	KindUnreadable  Kind = "unreadable"
)

// ExtractionError is a typed file-extraction failure. Generation is never
// attempted after one of these.
type ExtractionError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction failed (%s): %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a description of the failure fit to show the user.
func (e *ExtractionError) UserMessage() string {
	switch e.Kind {
	case KindUnsupported:
		return "That file type is not supported. Please upload a PDF, DOC, DOCX or TXT resume."
	case KindPassword:
		return "That PDF is password-protected. Please remove the password and try again."
	case KindCorrupted:
		return "That file looks corrupted. Please try exporting and uploading it again."
	default:
		return "We could not read that file. Please try a different one."
	}
}

// Text extracts plain text from a resume file, dispatching on the file
// extension (the declared type; content sniffing is out of scope).
func Text(fileName string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return pdfText(data)
	case ".docx", ".doc":
		return docxText(data)
	case ".txt":
		return string(data), nil
	default:
		return "", &ExtractionError{
			Kind:    KindUnsupported,
			Message: "unsupported file type, expected PDF, DOC, DOCX or TXT",
		}
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", classifyPDFError(err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue // skip pages that fail to decode, keep the rest
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Kind: KindCorrupted, Message: "failed to parse Word document", Cause: err}
	}
	defer func() { _ = doc.Close() }()

	return doc.Editable().GetContent(), nil
}

func classifyPDFError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "encrypt") || strings.Contains(msg, "password"):
		return &ExtractionError{Kind: KindPassword, Message: "PDF is password-protected and cannot be read", Cause: err}
	case strings.Contains(msg, "malformed") || strings.Contains(msg, "invalid"):
		return &ExtractionError{Kind: KindCorrupted, Message: "invalid or corrupted PDF file", Cause: err}
	default:
		return &ExtractionError{Kind: KindUnreadable, Message: "unexpected error reading PDF file", Cause: err}
	}
}
