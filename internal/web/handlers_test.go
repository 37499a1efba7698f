package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/vacancystats/internal/config"
	"github.com/JonMunkholm/vacancystats/internal/core"
)

const testHeader = "name,salary_from,salary_to,salary_currency,area_name,published_at\n"

var validCSV = testHeader +
	"Go developer,50000,70000,USD,Москва,2022-03-01T00:00:00+0300\n" +
	"Python developer,100000,200000,RUR,Казань,2021-05-01T00:00:00+0300\n"

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Rate.Enabled = false
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *core.Service) {
	t.Helper()
	svc := core.NewService(cfg)
	srv := NewServer(svc, cfg)
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	return srv, svc
}

// multipartBody builds a form with a "file" part and optional extra fields.
func multipartBody(t *testing.T, fileName, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(fw, content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func postUpload(t *testing.T, srv *Server, path, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, "vacancies.csv", content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body is not JSON: %v\n%s", err, rec.Body.String())
	}
	return resp
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestHandleIndex(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), `action="/report"`) {
		t.Errorf("index page missing upload form")
	}
}

func TestHandleCurrencies(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/currencies", nil))

	var got []struct {
		Code string `json:"code"`
		Name string `json:"name"`
		Rate string `json:"rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != len(core.Currencies()) {
		t.Fatalf("got %d currencies, want %d", len(got), len(core.Currencies()))
	}
	for _, c := range got {
		if c.Code == "RUR" && c.Rate != "1" {
			t.Errorf("RUR rate = %q, want 1", c.Rate)
		}
		if c.Name == "" {
			t.Errorf("%s has no display name", c.Code)
		}
	}
}

func TestHandleStatus(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxConcurrent = 3
	srv, _ := newTestServer(t, cfg)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var status core.LimiterStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if status.MaxConcurrent != 3 || status.Available != 3 || status.Active != 0 {
		t.Errorf("status = %+v", status)
	}
}

func TestHandleStats(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := postUpload(t, srv, "/api/stats?title=Go", validCSV, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		ID       string `json:"analysis_id"`
		FileName string `json:"file_name"`
		Rows     int    `json:"rows"`
		Kept     int    `json:"kept"`
		Result   struct {
			TitleFilter  string           `json:"title_filter"`
			SalaryByYear []core.YearPoint `json:"salary_by_year"`
		} `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got.ID == "" {
		t.Error("missing analysis_id")
	}
	if got.FileName != "vacancies.csv" {
		t.Errorf("file_name = %q", got.FileName)
	}
	if got.Rows != 2 || got.Kept != 2 {
		t.Errorf("rows/kept = %d/%d, want 2/2", got.Rows, got.Kept)
	}
	if got.Result.TitleFilter != "Go" {
		t.Errorf("title_filter = %q, want Go", got.Result.TitleFilter)
	}
	last := got.Result.SalaryByYear[len(got.Result.SalaryByYear)-1]
	if last.Year != 2022 || last.Value != 3639600 {
		t.Errorf("salary 2022 = %+v, want 3639600", last)
	}
}

func TestHandleStats_TitleFromForm(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := postUpload(t, srv, "/api/stats", validCSV, map[string]string{"title": "Python"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"title_filter":"Python"`) {
		t.Errorf("title from form not applied: %s", rec.Body.String())
	}
}

func TestHandleStats_Errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus int
		wantCode   string
	}{
		{"header only", testHeader, http.StatusBadRequest, "IN001"},
		{"all rows incomplete", testHeader + "Go,,1,RUR,Москва,2022-03-01T00:00:00+0300\n", http.StatusBadRequest, "IN002"},
		{"missing column", "name,salary_from\nGo,1\n", http.StatusBadRequest, "IN003"},
		{"unknown currency", testHeader + "Go,1,2,XYZ,Москва,2022-03-01T00:00:00+0300\n", http.StatusUnprocessableEntity, "VAL003"},
		{"bad number", testHeader + "Go,abc,2,RUR,Москва,2022-03-01T00:00:00+0300\n", http.StatusUnprocessableEntity, "VAL002"},
		{"bad date", testHeader + "Go,1,2,RUR,Москва,yesterday\n", http.StatusUnprocessableEntity, "VAL001"},
	}

	srv, _ := newTestServer(t, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postUpload(t, srv, "/api/stats", tt.content, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if got := decodeError(t, rec).Code; got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestHandleStats_NoFile(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/stats", strings.NewReader("title=Go"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != "FILE003" {
		t.Errorf("code = %q, want FILE003", got)
	}
}

func TestHandleStats_TooLarge(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxFileSize = 256
	srv, _ := newTestServer(t, cfg)

	rec := postUpload(t, srv, "/api/stats", validCSV+strings.Repeat("x", 1024), nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413: %s", rec.Code, rec.Body.String())
	}
	if got := decodeError(t, rec).Code; got != "FILE001" {
		t.Errorf("code = %q, want FILE001", got)
	}
}

func TestHandleStats_Busy(t *testing.T) {
	cfg := testConfig()
	cfg.Upload.MaxConcurrent = 1
	cfg.Upload.MaxWaitTime = 10 * time.Millisecond
	srv, svc := newTestServer(t, cfg)

	if err := svc.Limiter().Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer svc.Limiter().Release()

	rec := postUpload(t, srv, "/api/stats", validCSV, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if got := decodeError(t, rec).Code; got != "RUN001" {
		t.Errorf("code = %q, want RUN001", got)
	}
}

func TestHandleReport(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := postUpload(t, srv, "/report", validCSV, map[string]string{"title": "Go"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}

	body := rec.Body.String()
	for _, want := range []string{"Статистика по годам", "Средняя зарплата - Go", "3,639,600", "Другие"} {
		if !strings.Contains(body, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestHandleReport_ErrorPage(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	rec := postUpload(t, srv, "/report", testHeader+"Go,1,2,XYZ,Москва,2022-03-01T00:00:00+0300\n", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("Content-Type = %q, want HTML error page", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "VAL003") {
		t.Errorf("error page missing code:\n%s", rec.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t, testConfig())

	tests := []struct {
		path     string
		wantJSON bool
	}{
		{"/nope", false},
		{"/api/nope", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != http.StatusNotFound {
				t.Errorf("status = %d, want 404", rec.Code)
			}
			isJSON := strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json")
			if isJSON != tt.wantJSON {
				t.Errorf("Content-Type = %q, wantJSON %v", rec.Header().Get("Content-Type"), tt.wantJSON)
			}
			if !strings.Contains(rec.Body.String(), "HTTP001") {
				t.Errorf("body missing HTTP001: %s", rec.Body.String())
			}
		})
	}
}

func TestRateLimit_AnalysisRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.Rate.Enabled = true
	cfg.Rate.RequestsPerMinute = 100
	cfg.Rate.AnalysisLimit = 1
	srv, _ := newTestServer(t, cfg)

	if rec := postUpload(t, srv, "/api/stats", validCSV, nil); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := postUpload(t, srv, "/api/stats", validCSV, nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
	}
	if got := decodeError(t, rec).Code; got != "RATE001" {
		t.Errorf("code = %q, want RATE001", got)
	}

	// non-analysis routes only count against the global budget
	health := httptest.NewRecorder()
	srv.Router().ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if health.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", health.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errTooLarge, http.StatusRequestEntityTooLarge},
		{errNoFile, http.StatusBadRequest},
		{core.ErrInvalidCSV, http.StatusBadRequest},
		{&core.CurrencyError{Code: "XYZ"}, http.StatusUnprocessableEntity},
		{core.ErrTooManyAnalyses, http.StatusServiceUnavailable},
		{errRateLimited, http.StatusTooManyRequests},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
