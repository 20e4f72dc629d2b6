package captcha

import (
	"context"
	"net/http"
	"registrar/internal/core/services/captcha"
)

const CAPTCHA_TOKEN_HEADER = "X-Captcha-Token"

func SetCaptchaTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CAPTCHA_TOKEN_HEADER)
		if token != "" {
			ctx := context.WithValue(r.Context(), captcha.CONTEXT_CAPTCHA_TOKEN_KEY, captcha.CaptchaToken(token))
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
