package api

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lafter/internal/logging"
	"lafter/internal/services"
)

const requestIDHeader = "X-Request-ID"

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), handler.requestContext())
	SetupRoutes(router, handler)
	return router
}

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(handler.metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		classify := v1.Group("/classify")
		{
			classify.POST("", handler.Classify)
			classify.POST("/batch", handler.ClassifyBatch)
			classify.POST("/llm", handler.ClassifyLLM)
		}

		if handler.queue != nil {
			q := v1.Group("/queue")
			{
				q.GET("", handler.ListQueue)
				q.GET("/stats", handler.QueueStats)
				q.GET("/:id", handler.DescribeVideo)
			}
		}
	}
}

// requestContext tags each request with a request ID, records metrics, and
// writes an access log line.
func (h *Handler) requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		ctx := services.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		started := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		h.metrics.RecordRequest(route, strconv.Itoa(status))
		logging.WithContext(ctx, h.logger).Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(started)),
		)
	}
}
