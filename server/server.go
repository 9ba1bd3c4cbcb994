package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Dispatcher is the set of operations exposed over HTTP.
type Dispatcher interface {
	SendDaily(ctx context.Context) bool
	Preview(ctx context.Context) (string, bool)
	SendOpenNotice(ctx context.Context) bool
	SendCloseNotice(ctx context.Context) bool
}

// NewRouter builds the manual-trigger HTTP surface.
func NewRouter(d Dispatcher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log.Default()))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/send", triggerHandler(d.SendDaily))
	r.GET("/notice/open", triggerHandler(d.SendOpenNotice))
	r.GET("/notice/close", triggerHandler(d.SendCloseNotice))
	r.GET("/preview", func(c *gin.Context) {
		text, ok := d.Preview(c.Request.Context())
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.String(http.StatusOK, text)
	})
	return r
}

func triggerHandler(run func(context.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := run(c.Request.Context())
		c.String(http.StatusOK, fmt.Sprintf("Message sent successfully: %v", result))
	}
}

// RequestLogger logs basic request details and latency.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Printf(
			"request method=%s path=%s status=%d duration=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
