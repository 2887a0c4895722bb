package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/qrorder/internal/domain/errors"
	"github.com/polkiloo/qrorder/internal/domain/model"
	"github.com/polkiloo/qrorder/internal/server/http/dto"
	"github.com/polkiloo/qrorder/internal/server/http/middleware"
)

// CurrentSession extracts the resolved table session from context.
func CurrentSession(c *gin.Context) *model.Session {
	val, ok := c.Get(middleware.SessionContextKey)
	if !ok {
		return nil
	}
	session, _ := val.(*model.Session)
	return session
}

func respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.Success(data))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, dto.Failure(msg))
}

// respondError maps domain errors onto HTTP statuses. Store and unknown
// errors never leak their text.
func respondError(c *gin.Context, err error) {
	status, msg := classify(err)
	c.JSON(status, dto.Failure(msg))
}

func classify(err error) (int, string) {
	var unavailable *domainErrors.ProductUnavailableError
	switch {
	case errors.As(err, &unavailable):
		return http.StatusBadRequest, unavailable.Error()
	case errors.Is(err, domainErrors.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), domainErrors.ErrValidation.Error()+": ")
	case errors.Is(err, domainErrors.ErrUnsupportedGateway):
		return http.StatusBadRequest, domainErrors.ErrUnsupportedGateway.Error()
	case errors.Is(err, domainErrors.ErrSessionInvalid):
		return http.StatusUnauthorized, domainErrors.ErrSessionInvalid.Error()
	case errors.Is(err, domainErrors.ErrNotFound):
		return http.StatusNotFound, domainErrors.ErrNotFound.Error()
	case errors.Is(err, domainErrors.ErrOrderNotPayable):
		return http.StatusConflict, domainErrors.ErrOrderNotPayable.Error()
	case errors.Is(err, domainErrors.ErrConfiguration):
		return http.StatusInternalServerError, "payment gateway unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
