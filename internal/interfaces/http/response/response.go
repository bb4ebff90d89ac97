package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "osrs-bingo.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response, mapping domain sentinels to statuses.
func Error(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"message": domainerrors.UserMessage(err, "Something went wrong."),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainerrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainerrors.ErrNotFound), errors.Is(err, domainerrors.ErrNoActiveGame):
		return http.StatusNotFound
	case errors.Is(err, domainerrors.ErrConflict),
		errors.Is(err, domainerrors.ErrCapacity),
		errors.Is(err, domainerrors.ErrGameEnded),
		errors.Is(err, domainerrors.ErrAlreadyVerified):
		return http.StatusConflict
	case errors.Is(err, domainerrors.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
