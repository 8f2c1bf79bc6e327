package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authgate/internal/delivery/http/middleware"
	"authgate/internal/delivery/http/validator"
	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase returns canned results for handler tests.
type stubAuthUsecase struct {
	signupOutput *usecase.SignupOutput
	signupErr    error
	loginOutput  *usecase.LoginOutput
	loginErr     error
}

func (s *stubAuthUsecase) Signup(_ context.Context, _ *usecase.SignupInput) (*usecase.SignupOutput, error) {
	return s.signupOutput, s.signupErr
}

func (s *stubAuthUsecase) Login(_ context.Context, _ *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.loginOutput, s.loginErr
}

func newTestServer(uc usecase.AuthUsecase) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewAuthHandler(uc, logger)
	e.POST("/auth/signup", h.Signup)
	e.POST("/auth/login", h.Login)
	e.GET("/", Welcome)
	e.GET("/health", HealthCheck)

	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_Signup_Created(t *testing.T) {
	uc := &stubAuthUsecase{
		signupOutput: &usecase.SignupOutput{User: &entity.User{
			Username:     "bob",
			Email:        "bob@x.com",
			PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		}},
	}
	e := newTestServer(uc)

	rec := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"username":"bob","email":"bob@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	// The password hash never leaves the service.
	assert.NotContains(t, rec.Body.String(), "$2a$")

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Contains(t, string(envelope.Data), `"username":"bob"`)
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	uc := &stubAuthUsecase{signupErr: domainerrors.ErrDuplicateCredential}
	e := newTestServer(uc)

	rec := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"username":"bob","email":"bob@x.com","password":"secret123"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "DUPLICATE_CREDENTIAL")
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	e := newTestServer(&stubAuthUsecase{})

	// Missing email fails struct validation before the use case runs.
	rec := doJSON(t, e, http.MethodPost, "/auth/signup",
		`{"username":"bob","password":"secret123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAuthHandler_Login_OK(t *testing.T) {
	uc := &stubAuthUsecase{
		loginOutput: &usecase.LoginOutput{
			AccessToken: "header.payload.signature",
			TokenType:   usecase.TokenTypeBearer,
		},
	}
	e := newTestServer(uc)

	rec := doJSON(t, e, http.MethodPost, "/auth/login",
		`{"username":"bob","password":"secret123"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"header.payload.signature"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	uc := &stubAuthUsecase{loginErr: domainerrors.ErrInvalidCredentials}
	e := newTestServer(uc)

	rec := doJSON(t, e, http.MethodPost, "/auth/login",
		`{"username":"bob","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	// The response never says whether the user exists.
	assert.NotContains(t, rec.Body.String(), "not found")
}

func TestAuthHandler_WelcomeAndHealth(t *testing.T) {
	e := newTestServer(&stubAuthUsecase{})

	rec := doJSON(t, e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome")

	rec = doJSON(t, e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
