// Package autofill uploads a resume to the external parsing service and merges the parsed
// fields into a profile draft.
package autofill

import (
	"context"
	"fmt"

	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/transport"
	"github.com/jonathan/student-profile/internal/types"
)

// MaxResumeBytes is the largest resume accepted for autofill (10 MiB).
const MaxResumeBytes = 10 << 20

// AcceptedContentType is the only document type the parsing service accepts.
const AcceptedContentType = types.ContentTypePDF

// FallbackMessage is used when a failed response carries no message of its own.
const FallbackMessage = "failed to process resume"

// resumeField is the multipart field name the parsing service reads.
const resumeField = "resume"

// CheckFile applies the local preconditions: the file must be a PDF no larger than
// MaxResumeBytes. It never touches the network.
func CheckFile(file *types.Attachment) error {
	if file == nil || len(file.Data) == 0 {
		return &clienterr.ValidationError{Field: resumeField, Message: "Please choose a resume file"}
	}
	if ct := file.DetectedType(); ct != AcceptedContentType {
		return &clienterr.ValidationError{Field: resumeField, Message: "Please upload a PDF file"}
	}
	if file.Size() > MaxResumeBytes {
		return &clienterr.ValidationError{Field: resumeField, Message: "File size should be less than 10MB"}
	}
	return nil
}

// Client talks to the resume parsing endpoint.
type Client struct {
	url       string
	transport *transport.Client
}

// NewClient creates a Client posting to url. A nil tc uses transport defaults.
func NewClient(url string, tc *transport.Client) *Client {
	if tc == nil {
		tc = transport.NewClient(nil)
	}
	return &Client{url: url, transport: tc}
}

// Parse uploads file and returns the parsed profile. Local rejections return a
// *clienterr.ValidationError without a request; transport failures a *clienterr.NetworkError;
// non-2xx responses a *clienterr.ServerError carrying the server's message when present.
func (c *Client) Parse(ctx context.Context, file *types.Attachment) (*ParsedProfile, error) {
	if err := CheckFile(file); err != nil {
		return nil, err
	}

	part := transport.FilePart(resumeField, file, "resume.pdf")
	resp, err := c.transport.PostMultipart(ctx, c.url, []transport.Part{part})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, transport.ReadError(resp, FallbackMessage)
	}

	parsed, err := DecodeParsedProfile(resp.Body)
	if err != nil {
		return nil, &clienterr.ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s: unreadable response", FallbackMessage),
		}
	}
	return parsed, nil
}
