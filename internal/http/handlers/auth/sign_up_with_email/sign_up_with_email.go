package signupwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	"registrar/internal/core/services/captcha"
	signupwithemail "registrar/internal/core/services/sign_up_with_email"
	"registrar/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const TEST_ACTIVATION_KEY_HEADER = "x-test-activation-key"

var (
	usernamePattern    = regexp.MustCompile(`^[\w.@+-]+$`)
	forbiddenUsernames = []interface{}{"signup", "signout", "signin", "activate", "me", "password"}
)

type Handler struct {
	service    services.Service[signupwithemail.Input, signupwithemail.Result]
	isTestMode bool
}

func New(
	service services.Service[signupwithemail.Input, signupwithemail.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	User response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(
			&i.Username,
			validation.Required,
			validation.Length(1, 30),
			validation.Match(usernamePattern),
			validation.NotIn(forbiddenUsernames...),
		),
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 254)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		signupwithemail.Input{
			Username: user.Username(input.Username),
			Email:    c.NewEmail(input.Email),
			Password: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrUsernameAlreadyExists):
			response.RenderError(rw, "username already exists", http.StatusUnprocessableEntity)
		case errors.Is(err, captcha.ErrInvalidCaptcha):
			response.RenderInvalidCaptcha(rw)
		case errors.Is(err, drl.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	if h.isTestMode {
		rw.Header().Set(TEST_ACTIVATION_KEY_HEADER, string(result.Signup.ActivationKey))
	}
	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusCreated)
}
