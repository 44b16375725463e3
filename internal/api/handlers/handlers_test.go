package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"growth-plot/internal/api/models"
	"growth-plot/internal/config"
	"growth-plot/internal/model"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataPath := filepath.Join(t.TempDir(), "counts.csv")
	csvData := "Folder Name,Concentration(ml)\n" +
		"24_11_18_18_22_00,1.74E+07\n" +
		"24_11_19_11_20_00,1.04E+08\n" +
		"24_11_20_12_43_00,8.99E+08\n"
	if err := os.WriteFile(dataPath, []byte(csvData), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := config.Default()
	cfg.Controls = []config.ControlConfig{
		{
			Name:   "diluted control",
			Layout: model.ControlLayout,
			Points: []config.ControlPoint{
				{Time: "2024-03-01 18:40:00", Value: 3.09e6},
				{Time: "2024-03-02 10:07:00", Value: 1.81e8},
			},
		},
	}

	chartHandler := NewChartHandler(cfg, dataPath)
	seriesHandler := NewSeriesHandler(cfg, dataPath)
	normalizeHandler := NewNormalizeHandler(cfg.Chart.MaxHour)

	router := gin.New()
	api := router.Group("/api/v1")
	api.GET("/chart", chartHandler.RenderChart)
	api.GET("/stats", chartHandler.GetStats)
	api.GET("/series", seriesHandler.ListSeries)
	api.POST("/normalize", normalizeHandler.Normalize)
	return router
}

func TestChartEndpointReturnsPNG(t *testing.T) {
	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chart?max_hour=50", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatal("body is not a PNG")
	}
}

func TestChartEndpointRejectsNegativeCutoff(t *testing.T) {
	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/chart?max_hour=-1", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if resp.Error.Code != "INVALID_REQUEST" {
		t.Fatalf("error code %q", resp.Error.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MaxHour != model.DefaultMaxHour {
		t.Fatalf("default cutoff not applied: %v", resp.MaxHour)
	}
	if len(resp.Summaries) != 2 {
		t.Fatalf("expected device + control summary, got %d", len(resp.Summaries))
	}
	if resp.Summaries[0].Series != "device" || resp.Summaries[0].Count != 3 {
		t.Fatalf("device summary wrong: %+v", resp.Summaries[0])
	}
}

func TestSeriesEndpoint(t *testing.T) {
	router := testRouter(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/series", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.SeriesListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Series) != 2 {
		t.Fatalf("expected 2 series, got %+v", resp.Series)
	}
	if resp.Series[0].Kind != model.KindDevice || resp.Series[0].Points != 3 {
		t.Fatalf("device info wrong: %+v", resp.Series[0])
	}
	if resp.Series[1].Name != "diluted control" || resp.Series[1].Points != 2 {
		t.Fatalf("control info wrong: %+v", resp.Series[1])
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	router := testRouter(t)
	body := `{
		"max_hour": 50,
		"series": [{
			"name": "diluted control",
			"points": [
				{"time": "2024-03-01 18:40:00", "value": 3.09e6},
				{"time": "2024-03-02 10:07:00", "value": 1.81e8}
			]
		}]
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var resp models.NormalizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Series) != 1 || len(resp.Series[0].Points) != 2 {
		t.Fatalf("unexpected series shape: %+v", resp.Series)
	}
	if math.Abs(resp.Series[0].Points[1].Hours-15.45) > 1e-9 {
		t.Fatalf("elapsed hours = %v, want 15.45", resp.Series[0].Points[1].Hours)
	}
}

func TestNormalizeEndpointFormatError(t *testing.T) {
	router := testRouter(t)
	body := `{"series": [{"name": "bad", "points": [{"time": "2024-13-01 00:00:00", "value": 1}]}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/normalize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Code != "FORMAT_ERROR" {
		t.Fatalf("error code %q, want FORMAT_ERROR", resp.Error.Code)
	}
	if resp.Error.Details["series"] != "bad" {
		t.Fatalf("details missing series name: %+v", resp.Error.Details)
	}
}
