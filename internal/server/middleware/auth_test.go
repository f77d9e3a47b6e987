package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapValidator accepts exactly the tokens registered in it.
type mapValidator map[string]uuid.UUID

func (v mapValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return staticClaims(userID), nil
}

type staticClaims uuid.UUID

func (c staticClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

// probe records whether it ran and which user it saw.
type probe struct {
	called bool
	userID uuid.UUID
	hasID  bool
}

func (p *probe) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.called = true
		id, err := GetUserID(r)
		p.userID, p.hasID = id, err == nil
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BeArEr abc", "abc", true},
		{"Bearer  abc", "abc", true},
		{"abc", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"Bearer abc def", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	p := &probe{}
	h := AuthMiddleware(mapValidator{"good": userID})(p.handler())

	w := serve(h, "Bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, p.called)
	assert.True(t, p.hasID)
	assert.Equal(t, userID, p.userID)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := mapValidator{"good": uuid.New()}

	for _, header := range []string{
		"",
		"good",
		"Bearer",
		"Bearer wrong",
		"Basic good",
		"Bearer not.a.valid.jwt.token",
	} {
		t.Run(header, func(t *testing.T) {
			p := &probe{}
			w := serve(AuthMiddleware(validator)(p.handler()), header)

			assert.False(t, p.called, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
		})
	}
}

func TestOptionalAuthMiddleware_Anonymous(t *testing.T) {
	p := &probe{}
	w := serve(OptionalAuthMiddleware(mapValidator{})(p.handler()), "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, p.called)
	assert.False(t, p.hasID, "anonymous requests carry no user")
}

func TestOptionalAuthMiddleware_ValidToken(t *testing.T) {
	userID := uuid.New()
	p := &probe{}
	w := serve(OptionalAuthMiddleware(mapValidator{"good": userID})(p.handler()), "bearer good")

	assert.Equal(t, http.StatusOK, w.Code)
	require.True(t, p.hasID)
	assert.Equal(t, userID, p.userID)
}

func TestOptionalAuthMiddleware_BadTokenRejected(t *testing.T) {
	p := &probe{}
	w := serve(OptionalAuthMiddleware(mapValidator{"good": uuid.New()})(p.handler()), "Bearer forged")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, p.called)
}

func TestGetUserID(t *testing.T) {
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey(), userID))
	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	missing, err := GetUserID(httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, missing)
	assert.Contains(t, err.Error(), "user ID not found")

	wrongType := httptest.NewRequest(http.MethodGet, "/test", nil)
	wrongType = wrongType.WithContext(context.WithValue(wrongType.Context(), userIDKey, "not-a-uuid"))
	_, err = GetUserID(wrongType)
	assert.Error(t, err)
}
