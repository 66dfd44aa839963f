package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mayszaher/airportbooking/internal/domain"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrFailedPrecondition), errors.Is(err, domain.ErrNoSeats):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{"error": err.Error()})
}
