package activateuser

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	e "registrar/internal/core/domain/errors"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/services"
	activateuser "registrar/internal/core/services/activate_user"
	"registrar/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[activateuser.Input, activateuser.Result]
}

func New(
	service services.Service[activateuser.Input, activateuser.Result],
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
		activateuser.Input{ActivationKey: signup.ActivationKey(input.Key)},
	)
	if err != nil {
		switch {
		case errors.Is(err, signup.ErrInvalidActivationKey):
			response.RenderError(rw, "invalid activation key", http.StatusUnprocessableEntity)
		case errors.Is(err, signup.ErrActivationExpired):
			response.RenderError(rw, "activation key expired", http.StatusGone)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	u := response.User{}
	u.FromDomainUser(result.User)
	response.Render(rw, Result{User: u}, http.StatusOK)
}
