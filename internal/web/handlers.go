package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/JonMunkholm/vacancystats/internal/core"
	"github.com/JonMunkholm/vacancystats/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
)

// defaultMaxMemory is how much of a multipart upload is held in memory
// before the rest spills to a temporary file.
const defaultMaxMemory = 32 << 20

// upload is a parsed analysis request.
type upload struct {
	file     multipart.File
	fileName string
	title    string
}

// CurrencyResponse describes one supported salary currency.
type CurrencyResponse struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCurrencies returns the currency vocabulary with conversion rates.
func (s *Server) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	codes := core.Currencies()
	out := make([]CurrencyResponse, 0, len(codes))
	for _, code := range codes {
		rate, err := core.Rate(code)
		if err != nil {
			respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		out = append(out, CurrencyResponse{
			Code: string(code),
			Name: core.DisplayName(code),
			Rate: rate,
		})
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleStatus reports analysis slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.service.Limiter().Status())
}

// handleStats analyzes an uploaded CSV and returns the statistics as JSON.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzeUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, r, http.StatusOK, analysis)
}

// handleReport analyzes an uploaded CSV and renders the HTML report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.analyzeUpload(w, r)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	templ.Handler(templates.ReportPage(analysis)).ServeHTTP(w, r)
}

// analyzeUpload reads the multipart upload and runs it through the
// concurrency-limited analysis.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (*core.Analysis, error) {
	up, err := s.readUpload(w, r)
	if err != nil {
		return nil, err
	}
	defer up.file.Close()

	ctx := WithRequestMetadata(r.Context(), r, up.fileName)
	return s.service.AnalyzeLimited(ctx, up.file, up.title)
}

// readUpload enforces the size limit and extracts the file and title.
// The title may come from the form or the query string.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(min(maxSize, defaultMaxMemory)); err != nil {
		if isBodyTooLarge(err) {
			return nil, fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxSize)
		}
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNoFile, err)
	}

	return &upload{
		file:     file,
		fileName: header.Filename,
		title:    r.FormValue("title"),
	}, nil
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
