package confirmemail

import (
	"context"
	"net/http"
	"net/http/httptest"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	service "registrar/internal/core/services/confirm_email"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	s.input = &input
	if s.err != nil {
		return result, s.err
	}
	return service.Result{User: user.User{ID: 1, Username: "alice"}}, nil
}

func TestConfirmEmailHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
	}{
		{id: "success", body: `{"key": "abc"}`, expectedStatus: http.StatusOK},
		{id: "missing key", body: `{}`, expectedStatus: http.StatusBadRequest},
		{
			id:             "invalid key",
			body:           `{"key": "abc"}`,
			serviceErr:     signup.ErrInvalidConfirmationKey,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "email taken",
			body:           `{"key": "abc"}`,
			serviceErr:     user.ErrEmailAlreadyExists,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "internal error",
			body:           `{"key": "abc"}`,
			serviceErr:     context.Canceled,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			req := httptest.NewRequest(http.MethodPost, "/auth/email/confirm", strings.NewReader(testcase.body))
			rec := httptest.NewRecorder()

			New(stub).ServeHTTP(rec, req)

			assert.Equal(t, testcase.expectedStatus, rec.Code)
			if testcase.expectedStatus == http.StatusOK {
				assert.Equal(t, &service.Input{ConfirmationKey: "abc"}, stub.input)
			}
		})
	}
}
