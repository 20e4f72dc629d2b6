package confirmemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	confirmemail "registrar/internal/core/services/confirm_email"
	"registrar/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[confirmemail.Input, confirmemail.Result]
}

func New(
	service services.Service[confirmemail.Input, confirmemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Key string `json:"key"`
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
		validation.Field(&i.Key, validation.Required, validation.Length(0, 128)),
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
		confirmemail.Input{ConfirmationKey: signup.ConfirmationKey(input.Key)},
	)
	if err != nil {
		switch {
		case errors.Is(err, signup.ErrInvalidConfirmationKey):
			response.RenderError(rw, "invalid confirmation key", http.StatusUnprocessableEntity)
		case errors.Is(err, user.ErrEmailAlreadyExists):
			response.RenderError(rw, "email already exists", http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
