package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance_tracker/internal/config"
	"finance_tracker/internal/db/dbtest"
	"finance_tracker/internal/domain"
	"finance_tracker/internal/repository"
	"finance_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := dbtest.Open(t)
	repos := repository.New(db)
	svc := service.New(repos, nil, service.Options{
		JWTSecret:  testSecret,
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC) },
	})
	cfg := &config.Config{JWTSecret: testSecret, PageSize: 10, MaxPageSize: 100}
	return &testServer{t: t, router: NewRouter(cfg, svc, repos.Users), db: db}
}

// do sends body as JSON with an optional bearer token and decodes the envelope
func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var env envelope
	if json.Valid(rr.Body.Bytes()) {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

// raw sends body unencoded, for requests a JSON encoder cannot produce
func (s *testServer) raw(method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var env envelope
	if json.Valid(rr.Body.Bytes()) {
		require.NoError(s.t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

// userID looks up a registered account's id
func (s *testServer) userID(email string) uint {
	s.t.Helper()
	var u domain.User
	require.NoError(s.t, s.db.Where("email = ?", email).First(&u).Error)
	return u.ID
}

// getToken registers an account and returns its access token
func (s *testServer) getToken(email string) string {
	s.t.Helper()
	rr, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": "s3cret-pass"})
	require.Equal(s.t, http.StatusCreated, rr.Code, rr.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

// create posts body and returns the new item's id
func (s *testServer) create(path, token string, body any) uint {
	s.t.Helper()
	rr, env := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, rr.Code, rr.Body.String())
	var data struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}
