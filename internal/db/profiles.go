package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProfile inserts a student profile and returns its ID
func (db *DB) CreateProfile(ctx context.Context, p *NewProfile) (uuid.UUID, error) {
	var resume, picture []byte
	var resumeName, pictureName, picCT string
	if p.Resume != nil {
		resume, resumeName = p.Resume.Data, p.Resume.Filename
	}
	if p.Picture != nil {
		picture, pictureName, picCT = p.Picture.Data, p.Picture.Filename, p.Picture.ContentType
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO student_profiles
		 (user_id, personal_info, education, skills, resume, resume_filename, picture, picture_filename, picture_content_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.UserID, []byte(p.PersonalInfo), []byte(p.Education), []byte(p.Skills),
		resume, resumeName, picture, pictureName, picCT,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return id, nil
}

// GetProfile returns a profile without its attachment bytes, or nil if none exists
func (db *DB) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	var personal, education, skills []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, personal_info, education, skills,
		        resume IS NOT NULL, picture IS NOT NULL, created_at
		 FROM student_profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &personal, &education, &skills, &p.HasResume, &p.HasPicture, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.PersonalInfo = personal
	p.Education = education
	p.Skills = skills
	return &p, nil
}

// GetProfileSkills returns the raw skills block of a profile, or nil if none exists
func (db *DB) GetProfileSkills(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	var skills []byte
	err := db.pool.QueryRow(ctx,
		`SELECT skills FROM student_profiles WHERE id = $1`, id,
	).Scan(&skills)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile skills: %w", err)
	}
	return skills, nil
}

// GetProfileAttachment returns one stored attachment (AttachmentResume or AttachmentPicture),
// or nil when the profile does not exist or has no such file
func (db *DB) GetProfileAttachment(ctx context.Context, id uuid.UUID, kind string) (*File, error) {
	var query string
	switch kind {
	case AttachmentResume:
		query = `SELECT resume, resume_filename, 'application/pdf' FROM student_profiles WHERE id = $1`
	case AttachmentPicture:
		query = `SELECT picture, picture_filename, picture_content_type FROM student_profiles WHERE id = $1`
	default:
		return nil, fmt.Errorf("unknown attachment kind: %s", kind)
	}

	var f File
	err := db.pool.QueryRow(ctx, query, id).Scan(&f.Data, &f.Filename, &f.ContentType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", kind, err)
	}
	if f.Data == nil {
		return nil, nil
	}
	return &f, nil
}

// DeleteProfile removes a profile
func (db *DB) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM student_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
