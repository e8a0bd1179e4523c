package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tabviz/tabviz/internal/domain"
	"github.com/tabviz/tabviz/internal/service"
	"go.uber.org/zap"
)

// Handler handles upload and chart-data requests
type Handler struct {
	analysisService *service.AnalysisService
	chartService    *service.ChartService
	logger          *zap.Logger
	maxUploadBytes  int64
}

// NewHandler creates a new API handler
func NewHandler(
	analysisService *service.AnalysisService,
	chartService *service.ChartService,
	logger *zap.Logger,
	maxUploadBytes int64,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analysisService: analysisService,
		chartService:    chartService,
		logger:          logger,
		maxUploadBytes:  maxUploadBytes,
	}
}

// RegisterRoutes registers API routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Root)
	r.POST("/upload", h.Upload)
	r.POST("/chart-data", h.ChartData)
}

// Root reports API liveness
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API running", "status": "ok"})
}

// Upload ingests a CSV/XLSX file, profiles it and returns the session
// handle together with visualization suggestions.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "missing file field"})
		return
	}
	if h.maxUploadBytes > 0 && file.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file too large"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to open uploaded file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to read uploaded file"})
		return
	}

	resp, err := h.analysisService.Analyze(c.Request.Context(), file.Filename, data)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ChartData computes aggregated, chart-ready data for a cached
// session.
func (h *Handler) ChartData(c *gin.Context) {
	var req domain.ChartDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	resp, err := h.chartService.ChartData(&req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// fail maps a domain error to its HTTP status and writes the error
// body.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		// Do not leak internals beyond a short diagnostic.
		c.JSON(status, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

func statusFor(err error) int {
	var (
		unknownKind  *domain.UnknownChartKindError
		missingParam *domain.MissingParameterError
		colNotFound  *domain.ColumnNotFoundError
		typeMismatch *domain.TypeMismatchError
		provider     *domain.ProviderError
		invalid      *domain.SuggestionInvalidError
	)

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmptyDataset),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.As(err, &unknownKind),
		errors.As(err, &missingParam),
		errors.As(err, &colNotFound),
		errors.As(err, &typeMismatch):
		return http.StatusBadRequest
	case errors.As(err, &provider):
		if provider.RateLimited() {
			return http.StatusTooManyRequests
		}
		return http.StatusBadGateway
	case errors.As(err, &invalid):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
