package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubValidator accepts a single known token.
type stubValidator struct {
	token     string
	sessionID uuid.UUID
}

func (v *stubValidator) Validate(tokenString string) (uuid.UUID, error) {
	if tokenString == v.token {
		return v.sessionID, nil
	}
	return uuid.Nil, errors.New("invalid token")
}

func protectedHandler(t *testing.T, wantID uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := GetSessionID(r)
		require.NoError(t, err)
		assert.Equal(t, wantID, sessionID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionAuth_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	validator := &stubValidator{token: "good-token", sessionID: sessionID}
	handler := SessionAuth(validator)(protectedHandler(t, sessionID))

	req := httptest.NewRequest(http.MethodGet, "/sessions/"+sessionID.String(), nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuth_CaseInsensitiveBearer(t *testing.T) {
	sessionID := uuid.New()
	validator := &stubValidator{token: "good-token", sessionID: sessionID}
	handler := SessionAuth(validator)(protectedHandler(t, sessionID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuth_MissingHeader(t *testing.T) {
	validator := &stubValidator{token: "good-token", sessionID: uuid.New()}
	handler := SessionAuth(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuth_MalformedHeader(t *testing.T) {
	validator := &stubValidator{token: "good-token", sessionID: uuid.New()}
	handler := SessionAuth(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"good-token", "Basic abc", "Bearer", "Bearer  "} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header: %q", header)
	}
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	validator := &stubValidator{token: "good-token", sessionID: uuid.New()}
	handler := SessionAuth(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetSessionID_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSessionID(req)
	assert.Error(t, err)
}
