package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/gin-gonic/gin"
)

// errStatus maps the engine's error kinds onto HTTP status codes; anything
// unrecognized gets the call site's fallback.
func errStatus(err error, fallback int) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound), errors.Is(err, domain.ErrRequestNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRange), errors.Is(err, domain.ErrOutOfWindow), errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest
	default:
		return fallback
	}
}

func writeError(c *gin.Context, err error, fallback int) {
	body := gin.H{"error": err.Error()}
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		body["conflict_with"] = conflict.WithRequestID
	}
	c.JSON(errStatus(err, fallback), body)
}
