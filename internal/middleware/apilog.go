package middleware

import (
	"bytes"
	"io"
	"time"

	"election_billing/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Captured payloads are truncated so one oversized request cannot bloat the
// diagnostics table.
const maxCapturedBody = 4096

// bodyCapturer tees the response body while it is written
type bodyCapturer struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapturer) Write(b []byte) (int, error) {
	if w.buf.Len() < maxCapturedBody {
		w.buf.Write(b[:min(len(b), maxCapturedBody-w.buf.Len())])
	}
	return w.ResponseWriter.Write(b)
}

// ApiLogger records every API request into the append-only api_logs table.
// Logging is best-effort: a diagnostics failure never fails the request.
func ApiLogger(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var requestData string
		if c.Request.Body != nil {
			raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCapturedBody))
			if err == nil {
				requestData = string(raw)
				// Hand the handler a body that still contains everything read
				c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), c.Request.Body))
			}
		}

		capturer := &bodyCapturer{ResponseWriter: c.Writer}
		c.Writer = capturer
		c.Next()

		entry := domain.ApiLog{
			Endpoint:     c.FullPath(),
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start).Seconds(),
			RequestData:  requestData,
			ResponseData: capturer.buf.String(),
		}
		if entry.Endpoint == "" {
			entry.Endpoint = c.Request.URL.Path // Unrouted request
		}
		if len(c.Errors) > 0 {
			entry.ErrorMessage = c.Errors.String()
		} else if entry.StatusCode >= 400 {
			entry.ErrorMessage = capturer.buf.String()
		}
		if err := db.Create(&entry).Error; err != nil {
			logrus.WithField("error", err.Error()).Warn("API log write failed")
		}
	}
}
