package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

// Envelope represents the common response contract of the versioned API.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// Failure is the flat error body of the generate endpoints. Only a generic
// message is ever exposed.
type Failure struct {
	Error string `json:"error"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a success envelope with optional metadata.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Raw sends the payload without an envelope.
func Raw(c *gin.Context, status int, payload interface{}) {
	noStore(c)
	c.JSON(status, payload)
}

// Error sends an error envelope converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// GenerationFailed records err on the context for logging and answers with
// the generic failure body.
func GenerationFailed(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	noStore(c)
	c.AbortWithStatusJSON(appErrors.ErrGenerationFailed.Status, Failure{Error: appErrors.ErrGenerationFailed.Message})
}

// Attachment streams a rendered file download.
func Attachment(c *gin.Context, contentType, filename string, payload []byte) {
	noStore(c)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
