package changeemail

import (
	"context"
	"net/http"
	"net/http/httptest"
	c "registrar/internal/core/domain/common"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	service "registrar/internal/core/services/change_email"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var NOW = time.Date(2020, 1, 1, 1, 1, 1, 0, time.UTC)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	result.User = user.User{ID: 1, Username: "alice", CreatedAt: NOW}
	result.Signup = signup.Signup{UserID: 1}
	result.Signup.RequestEmailChange(input.Email, "key", NOW)
	return result, nil
}

func TestChangeEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{id: "success", body: `{"email": "New@X.COM"}`, expectedStatus: http.StatusAccepted},
		{id: "empty email", body: `{"email": ""}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid email", body: `{"email": "new"}`, expectedStatus: http.StatusBadRequest},
		{
			id:             "not authenticated",
			body:           `{"email": "new@x.com"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			id:             "no signup record",
			body:           `{"email": "new@x.com"}`,
			serviceErr:     signup.ErrSignupDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:             "rate limit",
			body:           `{"email": "new@x.com"}`,
			serviceErr:     drl.ErrRateLimitExceeded,
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			id:             "internal error",
			body:           `{"email": "new@x.com"}`,
			serviceErr:     context.Canceled,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			req := httptest.NewRequest(http.MethodPut, "/profile/email", strings.NewReader(testcase.body))
			rec := httptest.NewRecorder()

			New(stub).ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
		})
	}
}

func TestChangeEmailHandlerResponse(t *testing.T) {
	stub := &stubService{}
	req := httptest.NewRequest(http.MethodPut, "/profile/email", strings.NewReader(`{"email": "New@X.COM"}`))
	rec := httptest.NewRecorder()

	New(stub).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, &service.Input{Email: c.Email("New@x.com")}, stub.input)
	assert.JSONEq(
		t,
		`{
			"user": {"id": 1, "username": "alice", "is_active": false, "created_at": "2020-01-01T01:01:01Z"},
			"pending_email": {"email": "New@x.com", "created_at": "2020-01-01T01:01:01Z"}
		}`,
		rec.Body.String(),
	)
}
