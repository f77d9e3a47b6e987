package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/student-profile/internal/server/middleware"
	"github.com/jonathan/student-profile/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
		validator:   types.NewValidator(),
		logger:      logger,
	}
}

// Signup handles account registration requests.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.serviceError(w, "signup", err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, types.SignupResponse{
		Message: "User registered successfully",
		UserID:  user.ID,
		Token:   token,
	})
}

// Login handles user login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.serviceError(w, "login", err)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, types.LoginResponse{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Token:   token,
	})
}

// Me returns the authenticated account. It must run behind AuthMiddleware.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		writeError(w, h.logger, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		h.serviceError(w, "me", err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, user)
}

// serviceError maps a UserService error onto a response. Internal failures are logged
// and replaced by a generic message.
func (h *AuthHandler) serviceError(w http.ResponseWriter, op string, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("auth request failed", zap.String("op", op), zap.Error(err))
		writeError(w, h.logger, status, "Server error")
		return
	}
	var exists *ErrEmailAlreadyExists
	if errors.As(err, &exists) {
		writeError(w, h.logger, status, "Email already registered")
		return
	}
	writeError(w, h.logger, status, err.Error())
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		if ve.Tag() == "required" {
			return "Missing required fields"
		}
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
