// Package submission packages a profile draft and its attachments into one multipart request
// to the backend profile endpoint.
package submission

import (
	"context"
	"encoding/json"

	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/transport"
	"github.com/jonathan/student-profile/internal/types"
)

// Multipart field names understood by POST /api/profile.
const (
	FieldPersonalInfo   = "personalInfo"
	FieldEducation      = "education"
	FieldSkills         = "skills"
	FieldProfilePicture = "profilePicture"
	FieldResume         = "resume"
)

// FallbackMessage is used when a failed response carries no message of its own.
const FallbackMessage = "failed to submit profile"

// Attachments are the optional binary parts sent with a profile.
type Attachments struct {
	ProfilePicture *types.Attachment
	Resume         *types.Attachment
}

// Client submits profiles to the backend.
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

type submitResponse struct {
	Message   string     `json:"message"`
	ProfileID types.Text `json:"profile_id"`
}

// Parts builds the multipart sections for draft: each attachment that is present, then the
// three sections as independently serialized JSON blocks.
func Parts(draft types.ProfileDraft, att Attachments) ([]transport.Part, error) {
	var parts []transport.Part
	if att.ProfilePicture != nil {
		parts = append(parts, transport.FilePart(FieldProfilePicture, att.ProfilePicture, "profile.jpg"))
	}
	if att.Resume != nil {
		parts = append(parts, transport.FilePart(FieldResume, att.Resume, "resume.pdf"))
	}

	blocks := []struct {
		name string
		v    any
	}{
		{FieldPersonalInfo, draft.Personal},
		{FieldEducation, draft.Education},
		{FieldSkills, draft.Skills},
	}
	for _, b := range blocks {
		p, err := transport.JSONPart(b.name, b.v)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

// Submit sends draft and att in a single request and returns the assigned profile ID.
// No retries are made; a failed call can simply be repeated by the caller.
func (c *Client) Submit(ctx context.Context, draft types.ProfileDraft, att Attachments) (string, error) {
	parts, err := Parts(draft, att)
	if err != nil {
		return "", err
	}

	resp, err := c.transport.PostMultipart(ctx, c.url, parts)
	if err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", transport.ReadError(resp, FallbackMessage)
	}

	var out submitResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil || !out.ProfileID.Present() {
		return "", &clienterr.ServerError{
			StatusCode: resp.StatusCode,
			Message:    "profile saved but the response did not include a profile id",
		}
	}
	return out.ProfileID.String(), nil
}
