package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pnovbridge/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type reportObservation struct {
	format, outcome string
	rows            int
}

type recordingCollector struct {
	reports []reportObservation
}

func (r *recordingCollector) ObserveReport(format, outcome string, rows int, _ time.Duration) {
	r.reports = append(r.reports, reportObservation{format, outcome, rows})
}

func (r *recordingCollector) ObserveHTTP(string, string, int) {}

func (r *recordingCollector) Handler() http.Handler { return http.NotFoundHandler() }

func newTestEngine(maxUpload int64, m *recordingCollector) *gin.Engine {
	h := PNOVHandler{
		Builder:        services.NewReportBuilder(),
		Metrics:        m,
		MaxUploadBytes: maxUpload,
		Now:            func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) },
	}
	r := gin.New()
	r.OPTIONS("/pnov-bridge", h.Options)
	r.POST("/pnov-bridge", h.Report)
	r.POST("/pnov-bridge/pdf", h.ReportPDF)
	return r
}

func uploadRequest(t *testing.T, path, field, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestReport_NoFileUploaded(t *testing.T) {
	m := &recordingCollector{}
	r := newTestEngine(0, m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/pnov-bridge", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec)["error"])
	require.Len(t, m.reports, 1)
	assert.Equal(t, "missing_file", m.reports[0].outcome)
}

func TestReport_WrongFieldName(t *testing.T) {
	r := newTestEngine(0, &recordingCollector{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "upload", "test.csv", "Tracking ID\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", decode(t, rec)["error"])
}

func TestReport_TotalsByDSP(t *testing.T) {
	m := &recordingCollector{}
	r := newTestEngine(0, m)
	csvData := `Tracking ID,DSP Name,DA Name,Route,Cost
    ABC123,DSP1,John Doe,R1,25.00
    DEF456,DSP2,Jane Smith,R2,30.00
    GHI789,,Bob Johnson,R3,20.00
    JKL012,DSP1,Alice Brown,R4,15.00`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "file", "test.csv", csvData))

	require.Equal(t, http.StatusOK, rec.Code)
	report, ok := decode(t, rec)["report"].(string)
	require.True(t, ok)
	assert.Contains(t, report, "DSP1\t2")
	assert.Contains(t, report, "DSP2\t1")
	assert.Contains(t, report, "FLEX\t1")
	assert.Contains(t, report, "Grand Total\t4")

	require.Len(t, m.reports, 1)
	assert.Equal(t, reportObservation{"text", "ok", 4}, m.reports[0])
}

func TestReport_MultipleMissesByDA(t *testing.T) {
	r := newTestEngine(0, &recordingCollector{})
	csvData := `Tracking ID,DSP Name,DA Name,Route,Cost
    ABC123,DSP1,John Doe,R1,25.00
    DEF456,DSP1,John Doe,R1,30.00
    GHI789,DSP1,John Doe,R1,20.00`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "file", "test.csv", csvData))

	require.Equal(t, http.StatusOK, rec.Code)
	report := decode(t, rec)["report"].(string)
	assert.Contains(t, report, "DAs with Over 1 MM still missing:")
	assert.Contains(t, report, "R1 / John Doe / 3")
}

func TestReport_MissingColumn(t *testing.T) {
	m := &recordingCollector{}
	r := newTestEngine(0, m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "file", "test.csv", "Tracking ID,DSP Name,Cost\nA1,DSP1,10\n"))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "schema_error", body["code"])
	assert.Contains(t, body["error"], "DA Name")
	assert.Contains(t, body["error"], "Route")
	assert.Equal(t, "schema_error", m.reports[0].outcome)
}

func TestReport_MalformedCSV(t *testing.T) {
	r := newTestEngine(0, &recordingCollector{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "file", "test.csv", "Tracking ID,DSP Name,DA Name,Route\nA1,\"DSP1,Ann,R1\n"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parse_error", decode(t, rec)["code"])
}

func TestReport_TooLarge(t *testing.T) {
	m := &recordingCollector{}
	r := newTestEngine(64, m)
	csvData := "Tracking ID,DSP Name,DA Name,Route\n" + strings.Repeat("A1,DSP1,Ann,R1\n", 20)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge", "file", "test.csv", csvData))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "too_large", decode(t, rec)["code"])
}

func TestReportPDF(t *testing.T) {
	m := &recordingCollector{}
	r := newTestEngine(0, m)
	csvData := "Tracking ID,DSP Name,DA Name,Route,Cost\nA1,DSP1,Ann,R1,80\nA2,DSP1,Ann,R1,20\n"

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "/pnov-bridge/pdf", "file", "test.csv", csvData))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "PNOV_REPORT_20250102.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	assert.Equal(t, reportObservation{"pdf", "ok", 2}, m.reports[0])
}

func TestOptions(t *testing.T) {
	r := newTestEngine(0, &recordingCollector{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/pnov-bridge", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decode(t, rec)["status"])
}
