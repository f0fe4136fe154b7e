package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkarpovs/epitrello/internal/common"
)

func TestHandleRegister(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"testuser","email":"test@example.com","password":"password123"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "testuser", resp.User["username"])
	assert.Equal(t, "deadbeef-1", resp.Token)

	// the hash must never serialize, under any key
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")
}

func TestHandleRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.users.registerErr = common.ErrAlreadyExists

	rec := f.do(t, http.MethodPost, "/api/auth/register",
		`{"username":"x","email":"test@example.com","password":"pw"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleRegister_MissingField(t *testing.T) {
	f := newFixture(t)
	f.users.registerErr = common.ErrValidation

	rec := f.do(t, http.MethodPost, "/api/auth/register", `{"email":"test@example.com"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRegister_MalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/register", `{"username":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/login",
		`{"email":"test@example.com","password":"password123"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"deadbeef-1"`)
}

// An unknown email and a wrong password must produce byte-identical
// responses.
func TestHandleLogin_FailureBodiesIdentical(t *testing.T) {
	f := newFixture(t)
	f.users.loginErr = common.ErrUnauthorized

	unknown := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"pw"}`)
	wrongPw := f.do(t, http.MethodPost, "/api/auth/login", `{"email":"test@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestHandleMe(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/api/auth/me", "", "Authorization", "Bearer deadbeef-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"testuser"`)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")
}

func TestHandleMe_Unauthorized(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		header []string
	}{
		{"no header", nil},
		{"wrong scheme", []string{"Authorization", "Basic dXNlcg=="}},
		{"unknown token", []string{"Authorization", "Bearer bogus-9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/api/auth/me", "", tt.header...)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
