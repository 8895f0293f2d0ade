package lead

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// MaxDocumentBytes caps one uploaded document.
const MaxDocumentBytes = 10 << 20

// DocumentKind names an upload slot of the documents step.
type DocumentKind string

const (
	DocumentPassport DocumentKind = "passport"
	DocumentDiploma  DocumentKind = "diploma"
)

// AcceptedExtensions is the file input's accept list.
const AcceptedExtensions = ".pdf,.jpg,.jpeg,.png"

var (
	ErrEmptyDocument       = errors.New("lead: document is empty")
	ErrDocumentTooLarge    = errors.New("lead: document exceeds size limit")
	ErrUnsupportedDocument = errors.New("lead: document type not accepted")
)

var acceptedExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}

var acceptedMIME = []string{"application/pdf", "image/jpeg", "image/png"}

// Document is one uploaded file.
type Document struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Data        []byte `json:"data"`
}

// NewDocument validates an upload by extension, size and sniffed content
// type.
func NewDocument(fileName string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(data) > MaxDocumentBytes {
		return nil, ErrDocumentTooLarge
	}
	name := filepath.Base(strings.TrimSpace(fileName))
	if !acceptedExtensions[strings.ToLower(filepath.Ext(name))] {
		return nil, ErrUnsupportedDocument
	}
	detected := mimetype.Detect(data)
	for _, accepted := range acceptedMIME {
		if detected.Is(accepted) {
			return &Document{
				FileName:    name,
				ContentType: accepted,
				Size:        int64(len(data)),
				Data:        data,
			}, nil
		}
	}
	return nil, ErrUnsupportedDocument
}

// DisplayName shortens long file names for the upload slot.
func (d *Document) DisplayName() string {
	if d == nil {
		return ""
	}
	const limit = 20
	if utf8.RuneCountInString(d.FileName) <= limit {
		return d.FileName
	}
	return string([]rune(d.FileName)[:limit]) + "..."
}
