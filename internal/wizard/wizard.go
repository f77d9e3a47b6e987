package wizard

import (
	"context"
	"strings"
	"sync"

	"github.com/jonathan/student-profile/internal/autofill"
	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/submission"
	"github.com/jonathan/student-profile/internal/types"
)

// MaxPictureBytes is the largest profile picture accepted (5 MiB).
const MaxPictureBytes = 5 << 20

// ResumeParser turns an uploaded resume into structured fields. *autofill.Client implements it.
type ResumeParser interface {
	Parse(ctx context.Context, file *types.Attachment) (*autofill.ParsedProfile, error)
}

// ProfileSubmitter sends a finished draft to the backend. *submission.Client implements it.
type ProfileSubmitter interface {
	Submit(ctx context.Context, draft types.ProfileDraft, att submission.Attachments) (string, error)
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithResumeParser sets the parser used by SubmitResume.
func WithResumeParser(p ResumeParser) Option {
	return func(w *Wizard) { w.parser = p }
}

// WithSubmitter sets the submitter used by Submit.
func WithSubmitter(s ProfileSubmitter) Option {
	return func(w *Wizard) { w.submitter = s }
}

// WithObserver registers fn to receive a snapshot after every change. Observers run on the
// goroutine that made the change, after the wizard lock is released.
func WithObserver(fn func(Snapshot)) Option {
	return func(w *Wizard) { w.observers = append(w.observers, fn) }
}

// WithDraft starts the wizard from a previously saved draft instead of an empty one.
// The wizard still starts at the first step.
func WithDraft(d types.ProfileDraft) Option {
	return func(w *Wizard) { w.draft = d.Clone() }
}

// Wizard owns one ProfileDraft and the state around it. All methods are safe to call from
// multiple goroutines; network I/O runs without the lock held.
type Wizard struct {
	mu sync.Mutex

	draft     types.ProfileDraft
	step      Step
	progress  float64
	upload    UploadState
	completed bool
	profileID string

	resume  *types.Attachment
	picture *types.Attachment

	parser    ResumeParser
	submitter ProfileSubmitter
	observers []func(Snapshot)

	// autofillSeq increases with every resume upload; a response whose sequence number is no
	// longer current is discarded.
	autofillSeq uint64
	submitting  bool
}

// New creates a wizard at the first step with an empty draft.
func New(opts ...Option) *Wizard {
	w := &Wizard{
		step:   FirstStep,
		upload: UploadState{Status: UploadIdle},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.progress = ComputeProgress(w.draft)
	return w
}

// Snapshot returns a caller-owned copy of the current state.
func (w *Wizard) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

// Draft returns a deep copy of the current draft.
func (w *Wizard) Draft() types.ProfileDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Progress returns the completion percentage in [0,100].
func (w *Wizard) Progress() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.progress
}

func (w *Wizard) snapshotLocked() Snapshot {
	return Snapshot{
		Step:      w.step,
		Progress:  w.progress,
		Upload:    w.upload,
		Completed: w.completed,
		ProfileID: w.profileID,
		Draft:     w.draft.Clone(),
	}
}

// commit installs d as the draft and recomputes progress. Callers hold the lock.
func (w *Wizard) commitLocked(d types.ProfileDraft) {
	w.draft = d
	w.progress = ComputeProgress(d)
}

// unlockAndNotify releases the lock and, when changed, delivers a snapshot to observers.
func (w *Wizard) unlockAndNotify(changed bool) {
	if !changed || len(w.observers) == 0 {
		w.mu.Unlock()
		return
	}
	snap := w.snapshotLocked()
	observers := w.observers
	w.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}
}

// editableLocked reports why the draft may not change right now, or nil. Callers hold the lock.
func (w *Wizard) editableLocked() error {
	switch {
	case w.completed:
		return ErrCompleted
	case w.submitting:
		return ErrSubmissionInFlight
	}
	return nil
}

// mutate applies fn to the draft under the lock. fn returns the new draft and whether it
// changed anything.
func (w *Wizard) mutate(fn func(d types.ProfileDraft) (types.ProfileDraft, bool, error)) error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	next, changed, err := fn(w.draft)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	if changed {
		w.commitLocked(next)
	}
	w.unlockAndNotify(changed)
	return nil
}

// UpdateField replaces exactly one field of one section. Values are not validated; a wrong
// Go type or unknown field returns a *FieldError and leaves the draft untouched.
func (w *Wizard) UpdateField(section Section, field string, value any) error {
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		next, err := applyField(d, section, field, value)
		return next, err == nil, err
	})
}

// AppendAchievement adds an empty achievement line.
func (w *Wizard) AppendAchievement() error {
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		d.Education.Achievements = appendItem(d.Education.Achievements, "")
		return d, true, nil
	})
}

// SetAchievement replaces achievement i. An out-of-range index is a no-op.
func (w *Wizard) SetAchievement(i int, text string) error {
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		var changed bool
		d.Education.Achievements, changed = replaceAt(d.Education.Achievements, i, text)
		return d, changed, nil
	})
}

// RemoveAchievement deletes achievement i. An out-of-range index is a no-op.
func (w *Wizard) RemoveAchievement(i int) error {
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		var changed bool
		d.Education.Achievements, changed = removeAt(d.Education.Achievements, i)
		return d, changed, nil
	})
}

// AppendSkill adds an empty entry to list. The empty entry counts as unfilled, so progress
// can drop.
func (w *Wizard) AppendSkill(list SkillList) error {
	if _, err := skillListField(list); err != nil {
		return err
	}
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		return appendSkillEntry(d, list), true, nil
	})
}

// SetSkill replaces entry i of list. For Languages, level is the proficiency. An out-of-range
// index is a no-op.
func (w *Wizard) SetSkill(list SkillList, i int, name, level string) error {
	if _, err := skillListField(list); err != nil {
		return err
	}
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		next, changed := setSkillEntry(d, list, i, name, level)
		return next, changed, nil
	})
}

// RemoveSkill deletes entry i of list. An out-of-range index is a no-op.
func (w *Wizard) RemoveSkill(list SkillList, i int) error {
	if _, err := skillListField(list); err != nil {
		return err
	}
	return w.mutate(func(d types.ProfileDraft) (types.ProfileDraft, bool, error) {
		next, changed := removeSkillEntry(d, list, i)
		return next, changed, nil
	})
}

// Next advances one step when the current step's gate passes. A failed gate returns a
// *clienterr.ValidationError and the step does not change.
func (w *Wizard) Next() error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	if w.step >= LastStep {
		w.mu.Unlock()
		return ErrNoNextStep
	}
	if verr := validateStep(w.step, w.draft); verr != nil {
		w.mu.Unlock()
		return verr
	}
	w.step++
	w.unlockAndNotify(true)
	return nil
}

// Back returns to the previous step without validation and reports the resulting step.
// While a submission is in flight the step does not change.
func (w *Wizard) Back() Step {
	w.mu.Lock()
	changed := w.editableLocked() == nil && w.step > FirstStep
	if changed {
		w.step--
	}
	step := w.step
	w.unlockAndNotify(changed)
	return step
}

// AttachResume keeps file for submission without parsing it.
func (w *Wizard) AttachResume(file *types.Attachment) error {
	if err := autofill.CheckFile(file); err != nil {
		return err
	}
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	w.resume = file
	w.unlockAndNotify(true)
	return nil
}

// AttachProfilePicture keeps an image for submission and records its filename in the draft.
func (w *Wizard) AttachProfilePicture(file *types.Attachment) error {
	if err := checkPicture(file); err != nil {
		return err
	}
	name := file.Filename
	if name == "" {
		name = "profile.jpg"
	}
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	next, err := applyField(w.draft, SectionPersonal, "profilePicture", name)
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.picture = file
	w.commitLocked(next)
	w.unlockAndNotify(true)
	return nil
}

// ClearProfilePicture drops the attached image and its draft reference.
func (w *Wizard) ClearProfilePicture() error {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	next, err := applyField(w.draft, SectionPersonal, "profilePicture", "")
	if err != nil {
		w.mu.Unlock()
		return err
	}
	changed := w.picture != nil || w.draft.Personal.ProfilePicture != ""
	w.picture = nil
	w.commitLocked(next)
	w.unlockAndNotify(changed)
	return nil
}

func checkPicture(file *types.Attachment) error {
	if file == nil || len(file.Data) == 0 {
		return &clienterr.ValidationError{Field: "profilePicture", Message: "Please choose an image file"}
	}
	if !strings.HasPrefix(file.DetectedType(), "image/") {
		return &clienterr.ValidationError{Field: "profilePicture", Message: "Please upload an image file"}
	}
	if file.Size() > MaxPictureBytes {
		return &clienterr.ValidationError{Field: "profilePicture", Message: "Image size should be less than 5MB"}
	}
	return nil
}

// SubmitResume uploads file to the resume parser and merges the result into the draft with
// overwrite-on-present semantics. The merge applies to the draft as it is when the response
// arrives, and it is all or nothing: on any error the draft is left exactly as it was.
//
// Uploads may overlap. Only the most recent one is applied; an older response that completes
// later returns ErrStaleResponse and changes nothing, as does a response that arrives while a
// profile submission is in flight.
func (w *Wizard) SubmitResume(ctx context.Context, file *types.Attachment) (*autofill.ParsedProfile, error) {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}
	if w.parser == nil {
		w.mu.Unlock()
		return nil, ErrNoParser
	}
	if err := autofill.CheckFile(file); err != nil {
		w.upload = UploadState{Status: UploadError, Message: clienterr.Message(err, resumeFallbackMessage)}
		w.unlockAndNotify(true)
		return nil, err
	}
	w.autofillSeq++
	seq := w.autofillSeq
	parser := w.parser
	w.upload = UploadState{Status: UploadUploading}
	w.unlockAndNotify(true)

	parsed, err := parser.Parse(ctx, file)

	w.mu.Lock()
	if seq != w.autofillSeq || w.completed || w.submitting {
		w.mu.Unlock()
		return nil, ErrStaleResponse
	}
	if err != nil {
		w.upload = UploadState{Status: UploadError, Message: clienterr.Message(err, resumeFallbackMessage)}
		w.unlockAndNotify(true)
		return nil, err
	}
	w.commitLocked(autofill.Merge(w.draft, parsed))
	w.resume = file
	w.upload = UploadState{Status: UploadSuccess}
	w.unlockAndNotify(true)
	return parsed, nil
}

// Submit sends the draft and any attachments from the skills step and returns the assigned
// profile ID. On success the wizard is complete: the draft and attachments are released and
// further changes return ErrCompleted. On failure the wizard stays at the skills step with the
// draft untouched and the error message in the upload state.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	switch {
	case w.completed:
		w.mu.Unlock()
		return "", ErrCompleted
	case w.submitting:
		w.mu.Unlock()
		return "", ErrSubmissionInFlight
	case w.step != LastStep:
		w.mu.Unlock()
		return "", ErrNotAtFinalStep
	case w.submitter == nil:
		w.mu.Unlock()
		return "", ErrNoSubmitter
	}
	if verr := validateStep(w.step, w.draft); verr != nil {
		w.mu.Unlock()
		return "", verr
	}
	w.submitting = true
	draft := w.draft.Clone()
	att := submission.Attachments{ProfilePicture: w.picture, Resume: w.resume}
	submitter := w.submitter
	w.upload = UploadState{Status: UploadUploading}
	w.unlockAndNotify(true)

	id, err := submitter.Submit(ctx, draft, att)

	w.mu.Lock()
	w.submitting = false
	if err != nil {
		w.upload = UploadState{Status: UploadError, Message: clienterr.Message(err, submitFallbackMessage)}
		w.unlockAndNotify(true)
		return "", err
	}
	w.completed = true
	w.profileID = id
	w.resume = nil
	w.picture = nil
	// Any autofill still in flight is now stale.
	w.autofillSeq++
	w.commitLocked(types.ProfileDraft{})
	w.upload = UploadState{Status: UploadSuccess}
	w.unlockAndNotify(true)
	return id, nil
}
