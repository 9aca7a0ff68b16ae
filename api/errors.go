package api

import (
	"errors"
	"net/http"

	"github.com/emirhankarahan/flyticket/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps business-rule failures onto HTTP statuses. Anything the
// taxonomy does not recognize is an internal error.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
