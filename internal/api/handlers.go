package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"lafter/internal/classifier"
	"lafter/internal/logging"
	"lafter/internal/queue"
	"lafter/internal/services"
	"lafter/internal/telemetry"
	"lafter/internal/titlellm"
)

const defaultMaxBatch = 200

// Handler serves the HTTP API.
type Handler struct {
	classifier *classifier.Classifier
	llm        *titlellm.Classifier
	queue      *QueueService
	metrics    *telemetry.Provider
	logger     *slog.Logger
	maxBatch   int
}

// HandlerOption customizes a Handler.
type HandlerOption func(*Handler)

// WithLLM binds the LLM classifier. Without it /classify/llm returns 503.
func WithLLM(llm *titlellm.Classifier) HandlerOption {
	return func(h *Handler) { h.llm = llm }
}

// WithQueue binds the queue views.
func WithQueue(reader QueueReader) HandlerOption {
	return func(h *Handler) { h.queue = NewQueueService(reader) }
}

// WithMetrics sets the telemetry provider.
func WithMetrics(metrics *telemetry.Provider) HandlerOption {
	return func(h *Handler) { h.metrics = metrics }
}

// WithLogger sets the handler logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// WithMaxBatch caps the number of titles accepted by /classify/batch.
func WithMaxBatch(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxBatch = n
		}
	}
}

// NewHandler builds a handler around the rule/model classifier.
func NewHandler(cls *classifier.Classifier, opts ...HandlerOption) (*Handler, error) {
	if cls == nil {
		return nil, services.Wrap(services.ErrConfiguration, "api", "new handler", "classifier is required", nil)
	}
	h := &Handler{classifier: cls, maxBatch: defaultMaxBatch}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = logging.NewComponentLogger(h.logger, "api")
	return h, nil
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		ModelSize:    h.classifier.Model().Size(),
		Threshold:    h.classifier.Threshold(),
		LLMEnabled:   h.llm.Enabled(),
		QueueEnabled: h.queue != nil,
	})
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Title == nil {
		h.badRequest(c, "title is required")
		return
	}
	started := time.Now()
	result := h.classifier.ClassifyTitle(*req.Title)
	h.metrics.RecordClassification(telemetry.PassModel, result.Label.String(), time.Since(started))
	c.JSON(http.StatusOK, result)
}

// ClassifyBatch handles POST /api/v1/classify/batch.
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(req.Titles) == 0 {
		h.badRequest(c, "titles must not be empty")
		return
	}
	if len(req.Titles) > h.maxBatch {
		h.badRequest(c, fmt.Sprintf("at most %d titles per batch, got %d", h.maxBatch, len(req.Titles)))
		return
	}
	started := time.Now()
	results := h.classifier.ClassifyBatch(req.Titles)
	per := time.Since(started) / time.Duration(len(results))
	for _, result := range results {
		h.metrics.RecordClassification(telemetry.PassModel, result.Label.String(), per)
	}
	c.JSON(http.StatusOK, BatchResponse{Results: results, Threshold: h.classifier.Threshold()})
}

// ClassifyLLM handles POST /api/v1/classify/llm.
func (h *Handler) ClassifyLLM(c *gin.Context) {
	if !h.llm.Enabled() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "llm classifier not configured", Kind: "configuration"})
		return
	}
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
		h.badRequest(c, "title is required")
		return
	}

	ctx := c.Request.Context()
	started := time.Now()
	verdict, err := h.llm.Classify(ctx, *req.Title)
	if err != nil {
		h.llmFailure(ctx, c, err)
		return
	}
	h.metrics.RecordClassification(telemetry.PassLLM, verdict.Label.String(), time.Since(started))
	c.JSON(http.StatusOK, LLMResponse{Title: verdict.Title, Label: int(verdict.Label), Raw: verdict.Raw})
}

func (h *Handler) llmFailure(ctx context.Context, c *gin.Context, err error) {
	logger := logging.WithContext(ctx, h.logger)
	var parseErr *titlellm.ParseError
	if errors.As(err, &parseErr) {
		h.metrics.RecordLLMFailure("parse")
		logger.Warn("llm verdict rejected", slog.String(logging.FieldErrorKind, "parse"), slog.String("reason", parseErr.Reason))
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: parseErr.Error(), Kind: "parse", Raw: parseErr.Raw})
		return
	}

	kind := services.Kind(err)
	h.metrics.RecordLLMFailure(kind)
	logger.Warn("llm call failed", slog.String(logging.FieldErrorKind, kind), logging.Error(err))
	status := http.StatusBadGateway
	switch kind {
	case "validation":
		status = http.StatusBadRequest
	case "configuration":
		status = http.StatusServiceUnavailable
	case "timeout":
		status = http.StatusGatewayTimeout
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
}

// ListQueue handles GET /api/v1/queue.
func (h *Handler) ListQueue(c *gin.Context) {
	var filter queue.ListFilter
	for _, raw := range c.QueryArray("status") {
		for _, part := range strings.Split(raw, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			status, ok := queue.ParseStatus(part)
			if !ok {
				h.badRequest(c, fmt.Sprintf("unknown status %q", part))
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	items, err := h.queue.List(c.Request.Context(), filter)
	if err != nil {
		h.internalError(c, "list queue", err)
		return
	}
	if items == nil {
		items = []VideoItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// QueueStats handles GET /api/v1/queue/stats.
func (h *Handler) QueueStats(c *gin.Context) {
	stats, err := h.queue.Stats(c.Request.Context())
	if err != nil {
		h.internalError(c, "queue stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// DescribeVideo handles GET /api/v1/queue/:id.
func (h *Handler) DescribeVideo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.badRequest(c, fmt.Sprintf("invalid id %q", c.Param("id")))
		return
	}
	item, err := h.queue.Describe(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "describe video", err)
		return
	}
	if item == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: fmt.Sprintf("video %d not found", id), Kind: "not_found"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", key)
	}
	return n, nil
}

func (h *Handler) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Kind: "validation"})
}

func (h *Handler) internalError(c *gin.Context, operation string, err error) {
	logging.WithContext(c.Request.Context(), h.logger).Error(operation+" failed", logging.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Kind: services.Kind(err)})
}
