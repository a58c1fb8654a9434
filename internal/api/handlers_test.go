package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	c := testConfig(t)
	tokens, err := NewTokenIssuer(c)
	require.Nil(t, err)

	return NewRouter(Params{
		Log:        zap.NewNop(),
		Config:     c,
		Controller: testController(t, c),
		Tokens:     tokens,
	})
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestAPI_signupLoginGetUser(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	h := testRouter(t)

	rr := do(h, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"Secret123","email":"a@example.com"}`)
	require.Equal(http.StatusCreated, rr.Code)

	rr = do(h, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"Secret123"}`)
	require.Equal(http.StatusOK, rr.Code)

	var tok tokenResponse
	require.Nil(json.NewDecoder(rr.Body).Decode(&tok))
	claims, err := parseToken("test-secret", tok.Token)
	require.Nil(err)
	assert.Equal("alice", claims.Username)

	rr = do(h, http.MethodGet, "/api/users/alice", "")
	require.Equal(http.StatusOK, rr.Code)
	assert.Equal("application/json", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(body, `"username":"alice"`)
	assert.NotContains(body, "password")
}

func TestAPI_errors(t *testing.T) {
	h := testRouter(t)

	rr := do(h, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"Secret123","email":"a@example.com"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, "/api/auth/login", `nope`, http.StatusBadRequest},
		{"wrong password", http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope"}`, http.StatusUnauthorized},
		{"unknown user login", http.MethodPost, "/api/auth/login", `{"username":"bob","password":"Secret123"}`, http.StatusUnauthorized},
		{"missing email", http.MethodPost, "/api/auth/signup", `{"username":"bob","password":"Secret123"}`, http.StatusBadRequest},
		{"weak password", http.MethodPost, "/api/auth/signup", `{"username":"bob","password":"weak","email":"b@example.com"}`, http.StatusBadRequest},
		{"existing user", http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"Secret123","email":"a@example.com"}`, http.StatusConflict},
		{"unknown user", http.MethodGet, "/api/users/bob", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestAPI_cors(t *testing.T) {
	h := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:8123")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:8123", rr.Header().Get("Access-Control-Allow-Origin"))
}
