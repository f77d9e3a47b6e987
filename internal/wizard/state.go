// Package wizard implements the three-step profile submission wizard: a field store over a
// ProfileDraft, a derived progress percentage, per-step gates, and the resume autofill and
// final submission flows.
package wizard

import (
	"errors"
	"fmt"

	"github.com/jonathan/student-profile/internal/types"
)

// Step is a wizard page. Steps are numbered from 1.
type Step int

// Wizard steps in order.
const (
	StepPersonal  Step = 1
	StepEducation Step = 2
	StepSkills    Step = 3
)

// FirstStep and LastStep bound the step range.
const (
	FirstStep = StepPersonal
	LastStep  = StepSkills
)

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepEducation:
		return "education"
	case StepSkills:
		return "skills"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// UploadStatus tracks the one in-flight network operation (autofill or submission).
type UploadStatus string

// Upload statuses.
const (
	UploadIdle      UploadStatus = "idle"
	UploadUploading UploadStatus = "uploading"
	UploadSuccess   UploadStatus = "success"
	UploadError     UploadStatus = "error"
)

// UploadState is the status plus, for UploadError, the message to display.
type UploadState struct {
	Status  UploadStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Snapshot is a consistent, caller-owned copy of the wizard state.
type Snapshot struct {
	Step      Step               `json:"step"`
	Progress  float64            `json:"progress"`
	Upload    UploadState        `json:"upload"`
	Completed bool               `json:"completed"`
	ProfileID string             `json:"profile_id,omitempty"`
	Draft     types.ProfileDraft `json:"draft"`
}

// Fallback messages shown when an error carries no usable text.
const (
	resumeFallbackMessage = "failed to process resume"
	submitFallbackMessage = "failed to submit profile"
)

// Sentinel errors returned by the step controller.
var (
	ErrNoNextStep         = errors.New("already at the last step")
	ErrNotAtFinalStep     = errors.New("profile can only be submitted from the skills step")
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrCompleted          = errors.New("profile already submitted")
	ErrStaleResponse      = errors.New("resume response superseded by a newer upload")
	ErrNoParser           = errors.New("no resume parser configured")
	ErrNoSubmitter        = errors.New("no profile submitter configured")
)

// FieldError reports an UpdateField call naming an unknown field or passing a value of the
// wrong type. It signals a programming error; the draft is left untouched.
type FieldError struct {
	Section Section
	Field   string
	Reason  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s.%s: %s", e.Section, e.Field, e.Reason)
}
