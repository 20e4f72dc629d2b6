package changeemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	c "registrar/internal/core/domain/common"
	e "registrar/internal/core/domain/errors"
	drl "registrar/internal/core/domain/rate_limiter"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	service "registrar/internal/core/services/change_email"
	"registrar/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email string `json:"email"`
}

type Result struct {
	User         response.User         `json:"user"`
	PendingEmail response.PendingEmail `json:"pending_email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 254)),
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

	result, err := h.service.Run(r.Context(), service.Input{Email: c.NewEmail(input.Email)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, signup.ErrSignupDoesNotExist):
			response.RenderError(rw, "user has no signup record", http.StatusNotFound)
		case errors.Is(err, drl.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(
		rw,
		Result{
			User: u,
			PendingEmail: response.PendingEmail{
				Email:     string(result.Signup.EmailUnconfirmed.Value),
				CreatedAt: result.Signup.EmailConfirmationKeyCreated.Value,
			},
		},
		http.StatusAccepted,
	)
}
