package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/student-profile/internal/autofill"
	"github.com/jonathan/student-profile/internal/config"
	"github.com/jonathan/student-profile/internal/submission"
	"github.com/jonathan/student-profile/internal/transport"
	"github.com/jonathan/student-profile/internal/types"
	"github.com/jonathan/student-profile/internal/wizard"
)

// readDraft loads a draft saved as JSON. An empty path yields an empty draft.
func readDraft(path string) (types.ProfileDraft, error) {
	var d types.ProfileDraft
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("failed to read draft %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to parse draft %s: %w", path, err)
	}
	return d, nil
}

// saveDraft writes d as indented JSON to path, or to stdout when path is empty.
func saveDraft(path string, d types.ProfileDraft, stdout io.Writer) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft %s: %w", path, err)
	}
	return nil
}

// readAttachment loads a file from disk. An empty path yields nil.
func readAttachment(path string) (*types.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &types.Attachment{
		Filename:    filepath.Base(path),
		ContentType: types.DetectContentType(data),
		Data:        data,
	}, nil
}

// newWizard builds a wizard over d wired to the configured parsing and profile endpoints.
func newWizard(c config.Config, d types.ProfileDraft, opts ...wizard.Option) *wizard.Wizard {
	tc := transport.NewClient(&transport.Options{Timeout: c.Timeout()})
	opts = append([]wizard.Option{
		wizard.WithDraft(d),
		wizard.WithResumeParser(autofill.NewClient(c.AutofillURL, tc)),
		wizard.WithSubmitter(submission.NewClient(c.ProfileAPIURL, tc)),
	}, opts...)
	return wizard.New(opts...)
}
