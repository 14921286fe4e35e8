package server

import (
	"errors"
	"net/http"

	"parlay/models"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondError maps domain failure classes to HTTP statuses. Anything
// outside the taxonomy is a storage or internal failure: logged server-side
// and surfaced as a generic 500 so internals never leak into responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrPolicyViolation),
		errors.Is(err, models.ErrBetNotDeletable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": models.ErrInvalidCredentials.Error()})

	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})

	case errors.Is(err, models.ErrBetNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrInviteCodeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, models.ErrBetAlreadyResolved),
		errors.Is(err, models.ErrInviteCodeUsed),
		errors.Is(err, models.ErrInviteCodeExists),
		errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		log.WithFields(log.Fields{
			"path":  c.FullPath(),
			"error": err,
		}).Error("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
