package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/akshay-h-dev/milestack/pkg/errors"
)

// JSON writes a success payload as-is. Entities and lists are returned raw,
// without an envelope, matching what the frontend consumes.
func JSON(c *gin.Context, statusCode int, payload interface{}) {
	c.JSON(statusCode, payload)
}

// OK writes the conventional `{"ok": true}` acknowledgement used by delete
// endpoints.
func OK(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Error renders an error as `{"error": <message>}` with the status carried by
// the AppError, falling back to 500 for unclassified failures.
func Error(c *gin.Context, err error) {
	if err == nil {
		err = appErrors.ErrInternalServer
	}

	appErr := appErrors.FromError(err)
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": appErr.Message})
}
