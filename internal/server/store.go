package server

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jonathan/student-profile/internal/db"
)

// Store is the persistence surface used by the handlers. *db.DB satisfies it;
// tests substitute an in-memory fake.
type Store interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, name, email, passwordHash string, skills []string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)

	CreateProfile(ctx context.Context, p *db.NewProfile) (uuid.UUID, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	GetProfileSkills(ctx context.Context, id uuid.UUID) (json.RawMessage, error)
	GetProfileAttachment(ctx context.Context, id uuid.UUID, kind string) (*db.File, error)

	SaveRecommendations(ctx context.Context, userID uuid.UUID, payload json.RawMessage) (uuid.UUID, error)
}

var _ Store = (*db.DB)(nil)
