package extraction

import "fmt"

// UnsupportedFormatError indicates the uploaded file extension is not on the allow-list.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q (supported: .pdf, .docx, .doc)", e.Extension)
}

// ExtractionFailedError indicates the extraction library could not read the
// document (corrupt, encrypted, or not actually the declared format).
type ExtractionFailedError struct {
	Cause error
}

func (e *ExtractionFailedError) Error() string {
	return fmt.Sprintf("failed to extract text from document: %v", e.Cause)
}

func (e *ExtractionFailedError) Unwrap() error {
	return e.Cause
}

// InsufficientContentError indicates the document yielded too little text to
// be a usable resume. This is the heuristic for scanned/image-only documents.
type InsufficientContentError struct {
	CharCount int
}

func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("document contains too little extractable text (%d characters, minimum %d); scanned documents are not supported", e.CharCount, MinContentLength)
}
