// Package textextract pulls plain text out of uploaded court opinions and
// filings. PDF and plain text are supported; scanned images are not.
package textextract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Opinion is the extracted text of a filing.
type Opinion struct {
	Text  string
	Pages int
}

// Extract reads a filing by declared type. Accepted types are ".pdf" and
// ".txt" (extension, bare name, or MIME form).
func Extract(data io.ReaderAt, size int64, fileType string) (*Opinion, error) {
	switch strings.ToLower(fileType) {
	case ".pdf", "pdf", "application/pdf":
		return extractPDF(data, size)
	case ".txt", "txt", "text/plain":
		return extractTXT(data, size)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

func SupportedTypes() []string {
	return []string{".pdf", ".txt"}
}

func extractPDF(data io.ReaderAt, size int64) (*Opinion, error) {
	reader, err := pdf.NewReader(data, size)
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}

	var buf strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with broken content streams are skipped; the rest of
			// the opinion still extracts.
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}

	return &Opinion{
		Text:  normalize(buf.String()),
		Pages: numPages,
	}, nil
}

func extractTXT(data io.ReaderAt, size int64) (*Opinion, error) {
	buf := make([]byte, size)
	if _, err := data.ReadAt(buf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read text file: %w", err)
	}
	return &Opinion{
		Text:  normalize(string(bytes.TrimSpace(buf))),
		Pages: 1,
	}, nil
}

// normalize collapses runs of blank lines and trims trailing space so the
// chunker sees clean paragraph boundaries.
func normalize(s string) string {
	lines := strings.Split(s, "\n")
	var out []string
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
