package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/apperrors"
)

// respondError writes err as {"error", "code"}. Errors that are not
// AppErrors are logged and hidden behind a 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if appErr, ok := apperrors.GetAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.Error().Err(err).Str("code", string(appErr.Code)).Msg("Request failed")
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		})
		return
	}

	log.Error().Err(err).Msg("Unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  apperrors.ErrCodeInternal,
	})
}

// pagination reads page and limit query parameters. Missing or malformed
// values are left at zero for the service defaults.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return page, limit
}
