package signupwithemail

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "registrar/internal/core/domain/common"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services/captcha"
	service "registrar/internal/core/services/sign_up_with_email"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const ACTIVATION_KEY = signup.ActivationKey("0123456789abcdef0123456789abcdef01234567")

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{
		ID:        1,
		Username:  input.Username,
		Email:     c.NewOptional(input.Email, true),
		CreatedAt: time.Date(2020, 1, 1, 1, 1, 1, 0, time.UTC),
	}
	result.Signup = signup.Signup{UserID: 1, ActivationKey: ACTIVATION_KEY}
	return result, nil
}

func TestSignUpWithEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "success",
			body:           `{"username": "alice", "email": "Alice@EXAMPLE.com", "password": "secret"}`,
			expectedStatus: http.StatusCreated,
			expectedInput: &service.Input{
				Username: "alice",
				Email:    c.Email("Alice@example.com"),
				Password: "secret",
			},
		},
		{id: "invalid json", body: `{`, expectedStatus: http.StatusBadRequest},
		{
			id:             "invalid email",
			body:           `{"username": "alice", "email": "alice", "password": "secret"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "short password",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "123"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid username",
			body:           `{"username": "al ice", "email": "alice@x.com", "password": "secret"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "forbidden username",
			body:           `{"username": "activate", "email": "alice@x.com", "password": "secret"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "email exists",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "secret"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "username exists",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "secret"}`,
			serviceErr:     user.ErrUsernameAlreadyExists,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "invalid captcha",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "secret"}`,
			serviceErr:     captcha.ErrInvalidCaptcha,
			expectedStatus: http.StatusForbidden,
		},
		{
			id:             "rate limit",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "secret"}`,
			serviceErr:     drl.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			id:             "internal error",
			body:           `{"username": "alice", "email": "alice@x.com", "password": "secret"}`,
			serviceErr:     context.DeadlineExceeded,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			handler := New(stub, false)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(testcase.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Empty(t, rec.Header().Get(TEST_ACTIVATION_KEY_HEADER))
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, stub.input)
			}
		})
	}
}

func TestSignUpWithEmailHandlerTestMode(t *testing.T) {
	handler := New(&stubService{}, true)
	req := httptest.NewRequest(
		http.MethodPost,
		"/auth/signup",
		strings.NewReader(`{"username": "alice", "email": "alice@x.com", "password": "secret"}`),
	)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, string(ACTIVATION_KEY), rec.Header().Get(TEST_ACTIVATION_KEY_HEADER))
	assert.JSONEq(
		t,
		`{"user": {"id": 1, "username": "alice", "email": "alice@x.com", "is_active": false, "created_at": "2020-01-01T01:01:01Z"}}`,
		rec.Body.String(),
	)
}
