package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jonathan/student-profile/internal/db"
	"github.com/jonathan/student-profile/internal/schemas"
	"github.com/jonathan/student-profile/internal/server/middleware"
	"github.com/jonathan/student-profile/internal/types"
	embedded "github.com/jonathan/student-profile/schemas"
	"go.uber.org/zap"
)

// Upload limits for profile attachments.
const (
	MaxResumeBytes  = 10 << 20
	MaxPictureBytes = 5 << 20

	// maxProfileBody bounds the whole multipart request: both attachments plus the JSON blocks.
	maxProfileBody = MaxResumeBytes + MaxPictureBytes + 1<<20
)

// Multipart field names accepted by POST /api/profile.
const (
	fieldPersonalInfo   = "personalInfo"
	fieldEducation      = "education"
	fieldSkills         = "skills"
	fieldResume         = "resume"
	fieldProfilePicture = "profilePicture"
)

// profileBlock ties a multipart field to its schema and typed decode target.
type profileBlock struct {
	field  string
	schema string
	target any
}

// handleCreateProfile stores a submitted profile. The three blocks are required;
// the resume and picture are optional.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxProfileBody)
	if err := r.ParseMultipartForm(maxProfileBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.errorResponse(w, http.StatusRequestEntityTooLarge, "Request too large")
			return
		}
		s.errorResponse(w, http.StatusBadRequest, "Missing profile data")
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var draft types.ProfileDraft
	blocks := []profileBlock{
		{fieldPersonalInfo, embedded.PersonalInfo, &draft.Personal},
		{fieldEducation, embedded.Education, &draft.Education},
		{fieldSkills, embedded.Skills, &draft.Skills},
	}
	for _, b := range blocks {
		if r.PostFormValue(b.field) == "" {
			s.errorResponse(w, http.StatusBadRequest, "Missing profile data")
			return
		}
	}

	profile := &db.NewProfile{}
	raws := []*json.RawMessage{&profile.PersonalInfo, &profile.Education, &profile.Skills}
	for i, b := range blocks {
		raw, err := s.decodeBlock(b, r.PostFormValue(b.field))
		if err != nil {
			s.errorResponse(w, HTTPStatus(err), err.Error())
			return
		}
		*raws[i] = raw
	}
	if err := s.validator.Struct(draft); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	var err error
	profile.Resume, err = readUpload(r, fieldResume, MaxResumeBytes, isPDF,
		"Please upload a PDF file", "File size should be less than 10MB")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	profile.Picture, err = readUpload(r, fieldProfilePicture, MaxPictureBytes, isImage,
		"Please upload an image file", "Image size should be less than 5MB")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if userID, err := middleware.GetUserID(r); err == nil {
		profile.UserID = &userID
	}

	id, err := s.store.CreateProfile(r.Context(), profile)
	if err != nil {
		s.logger.Error("profile save failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Server error while saving profile")
		return
	}

	s.logger.Info("profile saved",
		zap.Stringer("profile_id", id),
		zap.Bool("resume", profile.Resume != nil),
		zap.Bool("picture", profile.Picture != nil),
	)
	s.jsonResponse(w, http.StatusCreated, map[string]string{
		"message":    "Profile saved successfully",
		"profile_id": id.String(),
	})
}

// decodeBlock validates one JSON block against its schema, decodes it into the typed
// target and returns the canonical re-encoding that is stored.
func (s *Server) decodeBlock(b profileBlock, value string) (json.RawMessage, error) {
	if err := schemas.ValidateBlock(b.schema, b.field, []byte(value)); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return nil, &ErrValidation{Message: ve.Summary()}
		}
		return nil, fmt.Errorf("validating %s: %w", b.field, err)
	}
	if err := json.Unmarshal([]byte(value), b.target); err != nil {
		return nil, &ErrValidation{Field: b.field, Message: "malformed JSON"}
	}
	canonical, err := json.Marshal(b.target)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", b.field, err)
	}
	return canonical, nil
}

func isPDF(ct string) bool   { return ct == types.ContentTypePDF }
func isImage(ct string) bool { return strings.HasPrefix(ct, "image/") }

// readUpload returns the file posted under field, or nil when none was sent.
// The content type is sniffed from the bytes; the client-declared type is ignored.
func readUpload(r *http.Request, field string, maxBytes int64, accept func(string) bool, typeMsg, sizeMsg string) (*db.File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, &ErrValidation{Field: field, Message: "unreadable upload"}
	}
	defer file.Close()

	data, err := readLimited(file, maxBytes)
	if err != nil {
		return nil, &ErrValidation{Message: sizeMsg}
	}
	if len(data) == 0 {
		return nil, nil
	}

	ct, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !accept(ct) {
		return nil, &ErrValidation{Message: typeMsg}
	}
	return &db.File{Filename: uploadName(header), ContentType: ct, Data: data}, nil
}

var errTooLarge = errors.New("upload exceeds limit")

func readLimited(f multipart.File, maxBytes int64) ([]byte, error) {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if n > maxBytes {
		return nil, errTooLarge
	}
	return buf.Bytes(), nil
}

func uploadName(h *multipart.FileHeader) string {
	if h == nil {
		return ""
	}
	return h.Filename
}

// parseProfileID reads the {id} path value. ok is false when it is not a UUID.
func parseProfileID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	return id, err == nil
}

// handleGetProfile returns the stored blocks without attachment bytes.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProfileID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	profile, err := s.store.GetProfile(r.Context(), id)
	if err == nil && profile == nil {
		err = &ErrProfileNotFound{ProfileID: id}
	}
	if err != nil {
		s.lookupError(w, err, zap.Stringer("profile_id", id))
		return
	}
	s.jsonResponse(w, http.StatusOK, profile)
}

// lookupError answers a failed read. Not-found errors are shown to the client; anything else is logged.
func (s *Server) lookupError(w http.ResponseWriter, err error, fields ...zap.Field) {
	status := HTTPStatus(err)
	if status != http.StatusInternalServerError {
		s.errorResponse(w, status, err.Error())
		return
	}
	s.logger.Error("lookup failed", append(fields, zap.Error(err))...)
	s.errorResponse(w, status, "Server error")
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	s.serveAttachment(w, r, db.AttachmentResume)
}

func (s *Server) handleGetPicture(w http.ResponseWriter, r *http.Request) {
	s.serveAttachment(w, r, db.AttachmentPicture)
}

// serveAttachment streams one stored attachment back with its sniffed content type.
func (s *Server) serveAttachment(w http.ResponseWriter, r *http.Request, kind string) {
	id, ok := parseProfileID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	file, err := s.store.GetProfileAttachment(r.Context(), id, kind)
	if err == nil && file == nil {
		err = &ErrProfileNotFound{ProfileID: id, Attachment: kind}
	}
	if err != nil {
		s.lookupError(w, err, zap.String("kind", kind), zap.Stringer("profile_id", id))
		return
	}

	ct := file.ContentType
	if ct == "" {
		ct = types.DetectContentType(file.Data)
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(file.Data)))
	if file.Filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", file.Filename))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		s.logger.Warn("attachment write failed", zap.Error(err))
	}
}

// handleGetSkills returns the raw skills block of a profile. Error bodies use
// "message" rather than "error" to stay compatible with existing dashboard clients.
func (s *Server) handleGetSkills(w http.ResponseWriter, r *http.Request) {
	id, ok := parseProfileID(r, "studentId")
	if !ok {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"message": "Student not found"})
		return
	}

	skills, err := s.store.GetProfileSkills(r.Context(), id)
	if err != nil {
		s.logger.Error("skills lookup failed", zap.Stringer("profile_id", id), zap.Error(err))
		s.jsonResponse(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if skills == nil {
		s.jsonResponse(w, http.StatusNotFound, map[string]string{"message": "Student not found"})
		return
	}
	s.jsonResponse(w, http.StatusOK, skills)
}
