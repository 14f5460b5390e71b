package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luzeouro/internal/domain"
	cartsvc "luzeouro/internal/service/cart"
	"luzeouro/internal/service/checkout"
	"luzeouro/internal/service/session"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps a service error to an HTTP status and a public body.
func statusFor(err error) (int, errorBody) {
	var verr *checkout.ValidationError
	var ierr *domain.InputError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, errorBody{Code: string(verr.Reason), Message: verr.Message}
	case errors.Is(err, cartsvc.ErrInvalidPostalCode):
		return http.StatusUnprocessableEntity, errorBody{Code: string(checkout.ReasonInvalidPostalCode), Message: err.Error()}
	case errors.As(err, &ierr):
		return http.StatusUnprocessableEntity, errorBody{Code: "invalid_input", Message: ierr.Error()}
	case errors.Is(err, cartsvc.ErrPostalCodeNotFound):
		return http.StatusNotFound, errorBody{Code: "postal_code_not_found", Message: cartsvc.ErrPostalCodeNotFound.Error()}
	case errors.Is(err, cartsvc.ErrPostalLookupFailed):
		return http.StatusBadGateway, errorBody{Code: "postal_lookup_failed", Message: cartsvc.ErrPostalLookupFailed.Error()}
	case errors.Is(err, cartsvc.ErrOrderFailed):
		return http.StatusInternalServerError, errorBody{Code: "order_failed", Message: cartsvc.ErrOrderFailed.Error()}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorBody{Code: "unauthenticated", Message: domain.ErrUnauthenticated.Error()}
	case errors.Is(err, session.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorBody{Code: "invalid_credentials", Message: session.ErrInvalidCredentials.Error()}
	case errors.Is(err, session.ErrInvalidToken):
		return http.StatusUnauthorized, errorBody{Code: "invalid_token", Message: session.ErrInvalidToken.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: "not_found", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, errorBody{Code: "already_exists", Message: domain.ErrAlreadyExists.Error()}
	default:
		return http.StatusInternalServerError, errorBody{Code: "internal", Message: "internal error"}
	}
}

func (h *handlers) fail(c *gin.Context, err error) {
	status, body := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Code: "bad_request", Message: msg})
}
