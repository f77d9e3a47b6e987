// Package transport provides the multipart HTTP plumbing used by the resume autofill
// and profile submission adapters.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "StudentProfile/1.0"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Options configures the client behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client // overrides Timeout when set
}

// DefaultOptions returns sensible defaults for profile API calls.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client posts multipart requests to the profile services.
type Client struct {
	http      *http.Client
	userAgent string
	headers   map[string]string
}

// NewClient creates a Client. A nil opts uses DefaultOptions.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Client{http: hc, userAgent: ua, headers: opts.Headers}
}

// Part is one multipart section. A Part with a Filename is sent as a file.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Data        []byte
}

// FieldPart builds a plain text form field.
func FieldPart(name, value string) Part {
	return Part{Name: name, Data: []byte(value)}
}

// JSONPart serializes v and sends it as a text form field.
func JSONPart(name string, v any) (Part, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Part{}, fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return Part{Name: name, Data: data}, nil
}

// FilePart builds a file part from an attachment. defaultName is used when the
// attachment carries no filename.
func FilePart(name string, a *types.Attachment, defaultName string) Part {
	filename := a.Filename
	if filename == "" {
		filename = defaultName
	}
	return Part{
		Name:        name,
		Filename:    filename,
		ContentType: a.DetectedType(),
		Data:        a.Data,
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// EncodeMultipart writes parts into a multipart body and returns it with its content type.
func EncodeMultipart(parts []Part) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, p := range parts {
		var (
			w   io.Writer
			err error
		)
		if p.Filename == "" {
			w, err = mw.CreateFormField(p.Name)
		} else {
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
				escapeQuotes(p.Name), escapeQuotes(p.Filename)))
			ct := p.ContentType
			if ct == "" {
				ct = "application/octet-stream"
			}
			h.Set("Content-Type", ct)
			w, err = mw.CreatePart(h)
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %s: %w", p.Name, err)
		}
		if _, err := w.Write(p.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write part %s: %w", p.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, mw.FormDataContentType(), nil
}

// PostMultipart sends parts to url and reads the whole response. Transport failures
// are returned as *clienterr.NetworkError; HTTP status is left to the caller.
func (c *Client) PostMultipart(ctx context.Context, url string, parts []Part) (*Response, error) {
	body, contentType, err := EncodeMultipart(parts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &clienterr.NetworkError{Op: "build request", URL: url, Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &clienterr.NetworkError{Op: "POST", URL: url, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &clienterr.NetworkError{Op: "read response", URL: url, Cause: err}
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// ReadError converts a non-2xx response into a *clienterr.ServerError, passing the
// server's "error" (or "message") text through verbatim when the body carries one.
func ReadError(resp *Response, fallback string) *clienterr.ServerError {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := fallback
	if err := json.Unmarshal(resp.Body, &body); err == nil {
		switch {
		case strings.TrimSpace(body.Error) != "":
			msg = body.Error
		case strings.TrimSpace(body.Message) != "":
			msg = body.Message
		}
	}
	return &clienterr.ServerError{StatusCode: resp.StatusCode, Message: msg}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
