package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User is a registered account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	Skills       []string  `json:"skills"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is a stored student profile. Attachment bytes are loaded separately.
type Profile struct {
	ID           uuid.UUID       `json:"id"`
	UserID       *uuid.UUID      `json:"user_id,omitempty"`
	PersonalInfo json.RawMessage `json:"personalInfo"`
	Education    json.RawMessage `json:"education"`
	Skills       json.RawMessage `json:"skills"`
	HasResume    bool            `json:"has_resume"`
	HasPicture   bool            `json:"has_picture"`
	CreatedAt    time.Time       `json:"created_at"`
}

// File is a binary attachment stored with a profile.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewProfile holds the values for a profile insert. Blocks are raw JSON documents.
type NewProfile struct {
	UserID       *uuid.UUID
	PersonalInfo json.RawMessage
	Education    json.RawMessage
	Skills       json.RawMessage
	Resume       *File
	Picture      *File
}

// Attachment kinds stored on a profile.
const (
	AttachmentResume  = "resume"
	AttachmentPicture = "picture"
)
