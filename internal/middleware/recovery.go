package middleware

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/pkg/middleware/requestid"
	"github.com/noah-isme/timetable-api/pkg/response"
)

// Recovery converts panics into the generic failure body. The panic value is
// logged and never sent to the caller.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Value(c)),
			zap.Any("panic", recovered),
			zap.Stack("stack"),
		)
		response.GenerationFailed(c, fmt.Errorf("panic: %v", recovered))
	})
}
