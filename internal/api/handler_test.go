package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tabviz/tabviz/internal/domain"
	"github.com/tabviz/tabviz/internal/service"
	"github.com/tabviz/tabviz/internal/session"
	"github.com/tabviz/tabviz/internal/suggest"
)

type stubGenerator struct {
	response string
	err      error
}

func (s *stubGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

const suggestionJSON = `{"visualization_suggestions":[{"title":"Totales por categoría","chart_type":"bar","parameters":{"x_axis":"Categoria","y_axis":"Valor"},"insight":"A concentra el total"}]}`

func newTestRouter(t *testing.T, gen suggest.Generator) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := session.NewStore(time.Hour, nil)
	t.Cleanup(store.Stop)

	orchestrator := suggest.NewOrchestrator(gen, "Spanish", nil)
	analysisService := service.NewAnalysisService(store, orchestrator, nil)
	chartService := service.NewChartService(store)

	router := SetupRouter(analysisService, chartService, nil, RouterConfig{
		AllowOrigins: []string{"*"},
	})
	return router, store
}

func uploadCSV(t *testing.T, router *gin.Engine, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "ventas.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const salesCSV = "Categoria,Valor\nA,10\nB,5\nA,20\nC,7\n"

func TestUploadAndChartData(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	rec := uploadCSV(t, router, salesCSV)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var up domain.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	require.NotEmpty(t, up.SessionID)
	assert.Equal(t, "csv", up.FileType)
	assert.Equal(t, 4, up.DataFrame.Shape.Rows)
	assert.Equal(t, 2, up.DataFrame.Shape.Columns)

	info := up.DataFrame.Info
	assert.Equal(t, 4, info.TotalRows)
	assert.Equal(t, 2, info.TotalColumns)
	assert.Equal(t, []string{"Valor"}, info.NumericColumns)
	assert.Equal(t, []string{"Categoria"}, info.CategoricalColumns)
	assert.Empty(t, info.DatetimeColumns)
	assert.Regexp(t, `^\d+\.\d{2} KB$`, info.MemoryUsage)

	require.Len(t, up.AIAnalysis.Suggestions, 1)

	// Feed the suggestion's own parameters back into chart-data.
	s := up.AIAnalysis.Suggestions[0]
	payload, _ := json.Marshal(domain.ChartDataRequest{
		SessionID:  up.SessionID,
		ChartKind:  s.ChartKind,
		Parameters: s.Parameters,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chart-data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ChartType  domain.ChartKind `json:"chart_type"`
		Data       domain.XYSeries  `json:"data"`
		Parameters map[string]string
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, domain.ChartBar, resp.ChartType)
	assert.Equal(t, []string{"A", "B", "C"}, resp.Data.Labels)
	assert.Equal(t, []float64{30, 5, 7}, resp.Data.Values)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, _ := w.CreateFormFile("file", "report.pdf")
	part.Write([]byte("not a table"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadEmptyFile(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	rec := uploadCSV(t, router, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadProviderQuota(t *testing.T) {
	router, store := newTestRouter(t, &stubGenerator{
		err: &domain.ProviderError{StatusCode: 429},
	})

	rec := uploadCSV(t, router, salesCSV)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Ingestion success is decoupled from suggestion success: the
	// session was committed before the model call.
	assert.Equal(t, 1, store.Len())
}

func TestChartDataUnknownSession(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	payload, _ := json.Marshal(domain.ChartDataRequest{
		SessionID:  "11111111-2222-3333-4444-555555555555",
		ChartKind:  domain.ChartBar,
		Parameters: map[string]string{"x_axis": "a", "y_axis": "b"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chart-data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChartDataUnknownKind(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	rec := uploadCSV(t, router, salesCSV)
	require.Equal(t, http.StatusOK, rec.Code)
	var up domain.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))

	payload, _ := json.Marshal(domain.ChartDataRequest{
		SessionID:  up.SessionID,
		ChartKind:  domain.ChartKind("donut"),
		Parameters: map[string]string{"x_axis": "Categoria", "y_axis": "Valor"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/chart-data", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "donut")
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, &stubGenerator{response: suggestionJSON})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
