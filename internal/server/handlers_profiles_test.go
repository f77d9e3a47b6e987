package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/student-profile/internal/clienterr"
	"github.com/jonathan/student-profile/internal/submission"
	"github.com/jonathan/student-profile/internal/transport"
	"github.com/jonathan/student-profile/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
)

const (
	validPersonal  = `{"firstName":"Asha","lastName":"Rao","email":"asha@example.com","phone":"+91 98765 43210"}`
	validEducation = `{"currentLevel":"bachelors","institution":"IIT Madras","field":"CS","cgpa":8.7,"achievements":["Dean's list"]}`
	validSkills    = `{"technical":[{"skill":"Go","level":"Advanced"}],"soft":[],"languages":[{"language":"Tamil","proficiency":"Native"}]}`
)

// profileForm describes a multipart profile submission; empty blocks are omitted.
type profileForm struct {
	personal, education, skills string
	resume, picture             *types.Attachment
}

func validForm() profileForm {
	return profileForm{personal: validPersonal, education: validEducation, skills: validSkills}
}

func (f profileForm) encode(t *testing.T) ([]byte, string) {
	t.Helper()
	var parts []transport.Part
	if f.picture != nil {
		parts = append(parts, transport.FilePart(fieldProfilePicture, f.picture, "profile.jpg"))
	}
	if f.resume != nil {
		parts = append(parts, transport.FilePart(fieldResume, f.resume, "resume.pdf"))
	}
	for _, kv := range [][2]string{
		{fieldPersonalInfo, f.personal},
		{fieldEducation, f.education},
		{fieldSkills, f.skills},
	} {
		if kv[1] != "" {
			parts = append(parts, transport.FieldPart(kv[0], kv[1]))
		}
	}
	buf, contentType, err := transport.EncodeMultipart(parts)
	require.NoError(t, err)
	return buf.Bytes(), contentType
}

func postProfile(t *testing.T, s *Server, f profileForm, headers map[string]string) (int, map[string]any) {
	t.Helper()
	body, ct := f.encode(t)
	h := map[string]string{"Content-Type": ct}
	for k, v := range headers {
		h[k] = v
	}
	w := do(t, s.Handler(), http.MethodPost, "/api/profile", body, h)
	return w.Code, decodeBody(t, w)
}

func TestCreateProfile_Success(t *testing.T) {
	s, store := newTestServer(t)
	f := validForm()
	f.resume = &types.Attachment{Filename: "cv.pdf", Data: pdfBytes}
	f.picture = &types.Attachment{Filename: "me.png", Data: pngBytes}

	code, body := postProfile(t, s, f, nil)

	require.Equal(t, http.StatusCreated, code, "%v", body)
	assert.Equal(t, "Profile saved successfully", body["message"])

	id, p := store.onlyProfile(t)
	assert.Equal(t, id.String(), body["profile_id"])
	assert.Nil(t, p.UserID, "anonymous submission")

	var personal types.PersonalInfo
	require.NoError(t, json.Unmarshal(p.PersonalInfo, &personal))
	assert.Equal(t, "Asha", personal.FirstName)

	var edu types.Education
	require.NoError(t, json.Unmarshal(p.Education, &edu))
	require.NotNil(t, edu.CGPA)
	assert.InDelta(t, 8.7, *edu.CGPA, 1e-9)

	require.NotNil(t, p.Resume)
	assert.Equal(t, "cv.pdf", p.Resume.Filename)
	assert.Equal(t, types.ContentTypePDF, p.Resume.ContentType)
	assert.Equal(t, pdfBytes, p.Resume.Data)

	require.NotNil(t, p.Picture)
	assert.Equal(t, "image/png", p.Picture.ContentType)
}

func TestCreateProfile_LinksAuthenticatedUser(t *testing.T) {
	s, store := newTestServer(t)
	userID := uuid.New()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	code, _ := postProfile(t, s, validForm(), map[string]string{"Authorization": "Bearer " + token})

	require.Equal(t, http.StatusCreated, code)
	_, p := store.onlyProfile(t)
	require.NotNil(t, p.UserID)
	assert.Equal(t, userID, *p.UserID)
}

func TestCreateProfile_BadTokenRejected(t *testing.T) {
	s, store := newTestServer(t)
	body, ct := validForm().encode(t)

	w := do(t, s.Handler(), http.MethodPost, "/api/profile", body,
		map[string]string{"Content-Type": ct, "Authorization": "Bearer forged"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.profiles)
}

func TestCreateProfile_Rejections(t *testing.T) {
	bigPDF := append(append([]byte{}, pdfBytes...), bytes.Repeat([]byte{'x'}, MaxResumeBytes)...)

	tests := []struct {
		name    string
		mutate  func(*profileForm)
		wantMsg string
	}{
		{
			name:    "missing personal info",
			mutate:  func(f *profileForm) { f.personal = "" },
			wantMsg: "Missing profile data",
		},
		{
			name:    "missing skills",
			mutate:  func(f *profileForm) { f.skills = "" },
			wantMsg: "Missing profile data",
		},
		{
			name:    "personal info fails schema",
			mutate:  func(f *profileForm) { f.personal = `{"firstName":"Asha","email":"asha@example.com"}` },
			wantMsg: "invalid personalInfo",
		},
		{
			name:    "malformed education",
			mutate:  func(f *profileForm) { f.education = `{"currentLevel":` },
			wantMsg: "invalid education",
		},
		{
			name:    "unknown education level",
			mutate:  func(f *profileForm) { f.education = `{"currentLevel":"postdoc","institution":"MIT"}` },
			wantMsg: "invalid education",
		},
		{
			name:    "bad email passes schema but fails tags",
			mutate:  func(f *profileForm) { f.personal = `{"firstName":"A","lastName":"B","email":"not-an-email"}` },
			wantMsg: "validation error: email - email",
		},
		{
			name:    "link that is not a web address",
			mutate:  func(f *profileForm) { f.personal = `{"firstName":"A","lastName":"B","email":"a@b.com","githubUrl":"ftp://github.com/a"}` },
			wantMsg: "validation error: githubUrl - weburl",
		},
		{
			name:    "bad skill level",
			mutate:  func(f *profileForm) { f.skills = `{"technical":[{"skill":"Go","level":"Wizard"}]}` },
			wantMsg: "validation error: level - oneof",
		},
		{
			name:    "resume not a pdf",
			mutate:  func(f *profileForm) { f.resume = &types.Attachment{Filename: "cv.pdf", Data: pngBytes} },
			wantMsg: "Please upload a PDF file",
		},
		{
			name:    "resume too large",
			mutate:  func(f *profileForm) { f.resume = &types.Attachment{Filename: "cv.pdf", Data: bigPDF} },
			wantMsg: "File size should be less than 10MB",
		},
		{
			name:    "picture not an image",
			mutate:  func(f *profileForm) { f.picture = &types.Attachment{Filename: "me.png", Data: pdfBytes} },
			wantMsg: "Please upload an image file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestServer(t)
			f := validForm()
			tt.mutate(&f)

			code, body := postProfile(t, s, f, nil)

			assert.Equal(t, http.StatusBadRequest, code)
			assert.True(t, strings.HasPrefix(body["error"].(string), tt.wantMsg), "got %q", body["error"])
			assert.Empty(t, store.profiles)
		})
	}
}

func TestCreateProfile_NotMultipart(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s.Handler(), http.MethodPost, "/api/profile", []byte(`{}`), map[string]string{"Content-Type": "application/json"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing profile data", decodeBody(t, w)["error"])
}

func TestCreateProfile_IgnoresQueryBlocks(t *testing.T) {
	s, store := newTestServer(t)
	f := profileForm{skills: validSkills}
	body, ct := f.encode(t)
	q := "?personalInfo=" + url.QueryEscape(validPersonal) + "&education=" + url.QueryEscape(validEducation)

	w := do(t, s.Handler(), http.MethodPost, "/api/profile"+q, body, map[string]string{"Content-Type": ct})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing profile data", decodeBody(t, w)["error"])
	assert.Empty(t, store.profiles)
}

func TestCreateProfile_SchemelessLinksAccepted(t *testing.T) {
	s, store := newTestServer(t)
	f := validForm()
	f.personal = `{"firstName":"Asha","lastName":"Rao","email":"asha@example.com","linkedinUrl":"linkedin.com/in/ab","portfolioUrl":"asha.dev"}`

	code, body := postProfile(t, s, f, nil)

	require.Equal(t, http.StatusCreated, code, "%v", body)
	_, p := store.onlyProfile(t)
	var personal types.PersonalInfo
	require.NoError(t, json.Unmarshal(p.PersonalInfo, &personal))
	assert.Equal(t, "linkedin.com/in/ab", personal.LinkedinURL)
}

func TestCreateProfile_StoreFailure(t *testing.T) {
	s, store := newTestServer(t)
	store.failWrites = assert.AnError

	code, body := postProfile(t, s, validForm(), nil)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Server error while saving profile", body["error"])
}

func TestGetProfile(t *testing.T) {
	s, store := newTestServer(t)
	f := validForm()
	f.resume = &types.Attachment{Filename: "cv.pdf", Data: pdfBytes}
	code, _ := postProfile(t, s, f, nil)
	require.Equal(t, http.StatusCreated, code)
	id, _ := store.onlyProfile(t)

	w := do(t, s.Handler(), http.MethodGet, "/api/profile/"+id.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, id.String(), body["id"])
	assert.Equal(t, true, body["has_resume"])
	assert.Equal(t, false, body["has_picture"])
	assert.Equal(t, "Asha", body["personalInfo"].(map[string]any)["firstName"])

	w = do(t, s.Handler(), http.MethodGet, "/api/profile/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Profile not found", decodeBody(t, w)["error"])

	w = do(t, s.Handler(), http.MethodGet, "/api/profile/42", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAttachments(t *testing.T) {
	s, store := newTestServer(t)
	f := validForm()
	f.resume = &types.Attachment{Filename: "cv.pdf", Data: pdfBytes}
	code, _ := postProfile(t, s, f, nil)
	require.Equal(t, http.StatusCreated, code)
	id, _ := store.onlyProfile(t)

	w := do(t, s.Handler(), http.MethodGet, "/api/profile/"+id.String()+"/resume", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.ContentTypePDF, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="cv.pdf"`)
	assert.Equal(t, pdfBytes, w.Body.Bytes())

	w = do(t, s.Handler(), http.MethodGet, "/api/profile/"+id.String()+"/picture", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No picture stored for this profile", decodeBody(t, w)["error"])

	w = do(t, s.Handler(), http.MethodGet, "/api/profile/"+uuid.NewString()+"/resume", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSkills(t *testing.T) {
	s, store := newTestServer(t)
	code, _ := postProfile(t, s, validForm(), nil)
	require.Equal(t, http.StatusCreated, code)
	id, _ := store.onlyProfile(t)

	w := do(t, s.Handler(), http.MethodGet, "/api/skills/"+id.String(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var skills types.Skills
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skills))
	assert.Equal(t, []types.SkillEntry{{Skill: "Go", Level: types.SkillAdvanced}}, skills.Technical)

	for _, path := range []string{"/api/skills/" + uuid.NewString(), "/api/skills/not-an-id"} {
		w = do(t, s.Handler(), http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Student not found", decodeBody(t, w)["message"])
	}
}

func TestSubmissionClient_EndToEnd(t *testing.T) {
	s, store := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	draft := types.ProfileDraft{
		Personal: types.PersonalInfo{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com"},
		Education: types.Education{
			CurrentLevel: types.LevelMasters,
			Institution:  "IISc",
			CGPA:         types.Float64(9.1),
		},
		Skills: types.Skills{
			Technical: []types.SkillEntry{{Skill: "Go", Level: types.SkillExpert}},
		},
	}
	client := submission.NewClient(ts.URL+"/api/profile", nil)

	id, err := client.Submit(t.Context(), draft, submission.Attachments{
		Resume: &types.Attachment{Data: pdfBytes},
	})
	require.NoError(t, err)

	storedID, p := store.onlyProfile(t)
	assert.Equal(t, storedID.String(), id)
	require.NotNil(t, p.Resume)
	assert.Equal(t, "resume.pdf", p.Resume.Filename)

	draft.Personal.Email = ""
	_, err = client.Submit(t.Context(), draft, submission.Attachments{})
	var serverErr *clienterr.ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusBadRequest, serverErr.StatusCode)
	assert.Contains(t, serverErr.Message, "invalid personalInfo")
}
