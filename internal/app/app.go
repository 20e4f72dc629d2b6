package app

import (
	"fmt"
	"net/http"
	"registrar/internal/app/deps"
	"registrar/internal/app/services"
	"registrar/internal/http/handlers/auth"
	activateuser "registrar/internal/http/handlers/auth/activate_user"
	confirmemail "registrar/internal/http/handlers/auth/confirm_email"
	signupwithemail "registrar/internal/http/handlers/auth/sign_up_with_email"
	"registrar/internal/http/handlers/captcha"
	changeemail "registrar/internal/http/handlers/profile/change_email"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	authRouter := chi.NewRouter()
	authRouter.Method(http.MethodPost, "/signup", signupwithemail.New(s.SignUpWithEmail, isTestMode))
	authRouter.Method(http.MethodPost, "/activate", activateuser.New(s.ActivateUser))
	authRouter.Method(http.MethodPost, "/email/confirm", confirmemail.New(s.ConfirmEmail))

	profileRouter := chi.NewRouter()
	profileRouter.Use(auth.SetAuthenticatedUserToContext)
	profileRouter.Method(http.MethodPut, "/email", changeemail.New(s.ChangeEmail))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{signupwithemail.TEST_ACTIVATION_KEY_HEADER},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Use(captcha.SetCaptchaTokenToContext)
	router.Mount("/auth", authRouter)
	router.Mount("/profile", profileRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           router,
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}
