package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/student-profile/internal/server/middleware"
	"go.uber.org/zap"
)

// saveRecommendationsRequest is the body of POST /api/recommendations.
type saveRecommendationsRequest struct {
	UserID          string          `json:"user_id"`
	Recommendations json.RawMessage `json:"recommendations"`
}

// handleSaveRecommendations stores a course recommendation payload for a user. The user
// comes from the bearer token when present, otherwise from the body; when both are given
// they must agree.
func (s *Server) handleSaveRecommendations(w http.ResponseWriter, r *http.Request) {
	var req saveRecommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payload := bytes.TrimSpace(req.Recommendations)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		s.errorResponse(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	userID, err := s.recommendationUser(r, req.UserID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.logger.Error("user lookup failed", zap.Stringer("user_id", userID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}
	if user == nil {
		s.errorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if _, err := s.store.SaveRecommendations(r.Context(), userID, payload); err != nil {
		s.logger.Error("saving recommendations failed", zap.Stringer("user_id", userID), zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Server error")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "Recommendations saved successfully"})
}

func (s *Server) recommendationUser(r *http.Request, bodyID string) (uuid.UUID, error) {
	tokenID, tokenErr := middleware.GetUserID(r)
	if bodyID == "" {
		if tokenErr != nil {
			return uuid.Nil, &ErrValidation{Message: "Missing required fields"}
		}
		return tokenID, nil
	}

	id, err := uuid.Parse(bodyID)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "user_id", Message: "must be a UUID"}
	}
	if tokenErr == nil && tokenID != id {
		return uuid.Nil, &ErrForbidden{Reason: "user_id does not match the authenticated user"}
	}
	return id, nil
}
