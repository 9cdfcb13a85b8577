// Package extraction converts uploaded resume documents into raw text.
// PDF and Word documents are supported; anything else is rejected before
// any parsing is attempted.
package extraction

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MinContentLength is the minimum number of characters a document must yield
// to be accepted. Below this the file is almost certainly scanned images.
const MinContentLength = 100

// supportedExtensions is the fixed allow-list of upload formats.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// Supported reports whether the (lowercased) file extension is on the allow-list.
func Supported(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// ExtractUpload spools an uploaded document to a temporary file, extracts its
// text, and removes the temporary file on every exit path.
func ExtractUpload(r io.Reader, ext string) (string, error) {
	if !Supported(ext) {
		return "", &UnsupportedFormatError{Extension: ext}
	}

	tmp, err := os.CreateTemp("", "resume-upload-*"+strings.ToLower(ext))
	if err != nil {
		return "", &ExtractionFailedError{Cause: err}
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return "", &ExtractionFailedError{Cause: err}
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", &ExtractionFailedError{Cause: err}
	}

	data, err := io.ReadAll(tmp)
	if err != nil {
		return "", &ExtractionFailedError{Cause: err}
	}

	return ExtractText(data, ext)
}

// ExtractText extracts raw text from an in-memory document.
// Returns UnsupportedFormatError, ExtractionFailedError, or
// InsufficientContentError as appropriate.
func ExtractText(data []byte, ext string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(ext) {
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx", ".doc":
		text, err = extractDocxText(data)
	default:
		return "", &UnsupportedFormatError{Extension: ext}
	}

	if err != nil {
		return "", &ExtractionFailedError{Cause: err}
	}

	text = normalizeText(text)
	if n := utf8.RuneCountInString(text); n < MinContentLength {
		return "", &InsufficientContentError{CharCount: n}
	}

	return text, nil
}

// extractPDFText concatenates the plain text of every page.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// Font map is optional; layout fidelity does not matter for resumes.
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	paragraphEndRe = regexp.MustCompile(`</w:p>`)
	textRunRe      = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)
)

// extractDocxText parses the document body XML and collects text runs.
// Legacy binary .doc files fail here and surface as ExtractionFailedError.
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEndRe.ReplaceAllString(content, "\n")

	var sb strings.Builder
	for _, match := range textRunRe.FindAllStringSubmatch(content, -1) {
		sb.WriteString(match[1])
		sb.WriteString(" ")
	}
	return sb.String(), nil
}

var blankLinesRe = regexp.MustCompile(`\n\n\n+`)

// normalizeText normalizes line endings and collapses excessive blank lines
// while preserving the document's line structure.
func normalizeText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, strings.TrimRight(line, " \t"))
	}

	result := strings.Join(cleaned, "\n")
	result = blankLinesRe.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
