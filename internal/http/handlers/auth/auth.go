package auth

import (
	"context"
	"net/http"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services/auth"
	"strconv"
)

// AUTHENTICATED_USER_HEADER is set by the host application proxy after it has
// authenticated the request.
const AUTHENTICATED_USER_HEADER = "X-Authenticated-User"

func ParseUserID(r *http.Request) (userID user.ID, ok bool) {
	header := r.Header.Get(AUTHENTICATED_USER_HEADER)
	if header == "" {
		return userID, false
	}
	id, err := strconv.ParseInt(header, 10, 64)
	if err != nil || id <= 0 {
		return userID, false
	}
	return user.ID(id), true
}

func SetAuthenticatedUserToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := ParseUserID(r)
		if ok {
			ctx := context.WithValue(r.Context(), auth.CONTEXT_USER_ID_KEY, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
