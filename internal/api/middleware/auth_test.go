package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdk/SBM-ReservationService/internal/domain"
)

func TestIdentity_ParsesGatewayHeaders(t *testing.T) {
	var got domain.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetAuthContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "42")
	req.Header.Set(HeaderPermissions, " manage_reservations , view_reports ")
	req.Header.Set(HeaderGuestKey, "guest-123")

	Identity(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "guest-123", got.GuestKey)
	require.Len(t, got.Permissions, 2)
	assert.True(t, got.IsManager())
}

func TestIdentity_AnonymousCall(t *testing.T) {
	var got domain.AuthContext
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = GetAuthContext(r.Context())
	})

	Identity(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.True(t, ok)
	assert.False(t, got.IsAuthenticated())
	assert.Empty(t, got.GuestKey)
}

func TestIdentity_OversizedGuestKeyIgnored(t *testing.T) {
	var got domain.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetAuthContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderGuestKey, strings.Repeat("x", domain.MaxGuestKeyLength+1))

	Identity(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Empty(t, got.GuestKey)
}

func TestIdentity_MalformedUserIDIgnored(t *testing.T) {
	var got domain.AuthContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetAuthContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "abc")

	Identity(next).ServeHTTP(httptest.NewRecorder(), req)

	// битый заголовок не валит запрос, вызов считается анонимным
	assert.False(t, got.IsAuthenticated())
}

func TestAuth_RejectsAnonymous(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	Identity(Auth(next)).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"code":"not_logged_in","message":"требуется аутентификация"}`, rec.Body.String())
}

func TestAuth_PassesAuthenticated(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(HeaderUserID, "10")

	rec := httptest.NewRecorder()
	Identity(Auth(next)).ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := GetUserID(req.Context())
	assert.False(t, ok)
}
