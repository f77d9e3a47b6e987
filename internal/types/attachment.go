package types

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Common content types for profile attachments.
const (
	ContentTypePDF = "application/pdf"
)

// Attachment is an optional binary payload (resume document or profile image)
// owned by the wizard until the profile is submitted.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Size returns the payload size in bytes.
func (a *Attachment) Size() int64 {
	if a == nil {
		return 0
	}
	return int64(len(a.Data))
}

// DetectedType returns the declared content type, falling back to sniffing the payload.
func (a *Attachment) DetectedType() string {
	if a == nil {
		return ""
	}
	if a.ContentType != "" {
		return a.ContentType
	}
	return DetectContentType(a.Data)
}

// DetectContentType sniffs the media type of data without parameters (e.g. "application/pdf").
func DetectContentType(data []byte) string {
	ct, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	return strings.TrimSpace(ct)
}
