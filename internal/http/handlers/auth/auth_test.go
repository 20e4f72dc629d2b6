package auth

import (
	"net/http"
	"net/http/httptest"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services/auth"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUserID(t *testing.T) {
	cases := []struct {
		header     string
		expectedOK bool
		expectedID user.ID
	}{
		{header: "42", expectedOK: true, expectedID: 42},
		{header: "", expectedOK: false},
		{header: "0", expectedOK: false},
		{header: "-1", expectedOK: false},
		{header: "abc", expectedOK: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(AUTHENTICATED_USER_HEADER, testcase.header)

			userID, ok := ParseUserID(req)

			assert.Equal(t, testcase.expectedOK, ok)
			assert.Equal(t, testcase.expectedID, userID)
		})
	}
}

func TestSetAuthenticatedUserToContext(t *testing.T) {
	var value interface{}
	next := http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		value = r.Context().Value(auth.CONTEXT_USER_ID_KEY)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(AUTHENTICATED_USER_HEADER, "7")

	SetAuthenticatedUserToContext(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, user.ID(7), value)
}
