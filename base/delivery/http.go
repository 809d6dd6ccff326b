package delivery

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/domain"
	"github.com/x-xyz/launchpad/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotFound, http.StatusNotFound},
	{query.ErrNotFound, http.StatusNotFound},

	{domain.ErrBadParamInput, http.StatusBadRequest},
	{domain.ErrInvalidAddress, http.StatusBadRequest},
	{domain.ErrInvalidNumberFormat, http.StatusBadRequest},
	{domain.ErrInvalidJsonFormat, http.StatusBadRequest},
	{domain.ErrInvalidRecipient, http.StatusBadRequest},
	{domain.ErrUnsupportedMedia, http.StatusUnsupportedMediaType},
	{domain.ErrUnsupportedSchema, http.StatusBadRequest},

	{domain.ErrInvalidSignature, http.StatusUnauthorized},

	{domain.ErrNotOwner, http.StatusForbidden},
	{domain.ErrNotApproved, http.StatusForbidden},
	{domain.ErrNotSeller, http.StatusForbidden},
	{domain.ErrNotPoolOwner, http.StatusForbidden},
	{domain.ErrNotMinter, http.StatusForbidden},

	{domain.ErrInvalidPrice, http.StatusUnprocessableEntity},
	{domain.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{domain.ErrNotListed, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientPayment, http.StatusUnprocessableEntity},
	{domain.ErrCannotBuyOwn, http.StatusUnprocessableEntity},
	{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity},
	{domain.ErrTransferFailed, http.StatusUnprocessableEntity},
	{domain.ErrNothingToClaim, http.StatusUnprocessableEntity},
	{domain.ErrSoulbound, http.StatusUnprocessableEntity},

	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrLockTimeout, http.StatusServiceUnavailable},
}

// StatusOf maps a domain error to the http status it is reported with
func StatusOf(err error, fallback int) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest
	}
	return fallback
}

// LogFailure logs a failed call at Warn when err maps to a client error, at Error otherwise
func LogFailure(l log.Logger, err error, msg string) {
	if StatusOf(err, http.StatusInternalServerError) < http.StatusInternalServerError {
		l.Warn(msg)
		return
	}
	l.Error(msg)
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status = StatusOf(err, status)
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
