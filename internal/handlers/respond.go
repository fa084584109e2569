package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/apperr"
)

// failure renders {success:false, error} for err.
// notFound is the message for a missing id, failed the generic message for
// store errors, which are logged but never echoed to the caller.
func failure(c *gin.Context, err error, notFound, failed string) {
	var (
		ve  *apperr.ValidationError
		ise *apperr.InvalidStatusError
		te  *apperr.TransitionError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ve.Error()})
	case errors.As(err, &ise):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": ise.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": te.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": notFound})
	case errors.Is(err, apperr.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "status was changed by another request, reload and retry"})
	default:
		log.Printf("[handlers] %s: %v", failed, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": failed})
	}
}

// statusTable describes a lifecycle for GET /statuses.
func statusTable(states []string, next func(string) []string, strict bool) gin.H {
	transitions := make(map[string][]string, len(states))
	for _, s := range states {
		to := next(s)
		if to == nil {
			to = []string{}
		}
		transitions[s] = to
	}
	return gin.H{
		"success":     true,
		"statuses":    states,
		"transitions": transitions,
		"strict":      strict,
	}
}
