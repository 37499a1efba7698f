package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/JonMunkholm/vacancystats/internal/config"
	"github.com/google/uuid"
)

// DefaultAnalysisTimeout bounds a limited run when no timeout is configured.
const DefaultAnalysisTimeout = 2 * time.Minute

// Service runs analyses. It is safe for concurrent use; every run owns
// its own buckets and shares nothing with other runs.
type Service struct {
	limiter *AnalysisLimiter
	timeout time.Duration
}

// NewService creates a Service sized from the upload settings.
// A nil cfg uses the limiter defaults.
func NewService(cfg *config.Config) *Service {
	var (
		maxConcurrent int
		maxWait       time.Duration
		timeout       = DefaultAnalysisTimeout
	)
	if cfg != nil {
		maxConcurrent = cfg.Upload.MaxConcurrent
		maxWait = cfg.Upload.MaxWaitTime
		if cfg.Upload.Timeout > 0 {
			timeout = cfg.Upload.Timeout
		}
	}
	return &Service{
		limiter: NewAnalysisLimiter(maxConcurrent, maxWait),
		timeout: timeout,
	}
}

// Limiter returns the limiter guarding AnalyzeLimited.
func (s *Service) Limiter() *AnalysisLimiter {
	return s.limiter
}

// Analyze reads a complete CSV input and aggregates it.
//
// The run goes through four phases: read, header check and row filter,
// normalization, aggregation. ctx is checked between phases. On error no
// partial analysis is returned.
func (s *Service) Analyze(ctx context.Context, r io.Reader, titleFilter string) (*Analysis, error) {
	start := time.Now()
	id := uuid.New().String()
	log := runLogger(ctx, id)

	log.Debug("analysis started", "title_filter", titleFilter)

	a, err := s.run(ctx, r, titleFilter)
	if err != nil {
		log.Warn("analysis failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	a.ID = id
	a.FileName = SourceFromContext(ctx)
	a.Duration = time.Since(start)

	log.Info("analysis completed",
		"rows", a.Rows,
		"kept", a.Kept,
		"dropped", a.Dropped,
		"years", len(a.Result.SalaryByYear),
		"eligible_regions", a.Result.EligibleRegions,
		"duration_ms", a.Duration.Milliseconds(),
	)
	return a, nil
}

func (s *Service) run(ctx context.Context, r io.Reader, titleFilter string) (*Analysis, error) {
	ds, err := ReadDataset(r)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	idx, err := ValidateHeader(ds.Header)
	if err != nil {
		return nil, err
	}
	kept, dropped := FilterRows(len(ds.Header), ds.Rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := NewNormalizer(idx).NormalizeRows(kept)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := Aggregate(records, titleFilter)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Rows:    len(ds.Rows),
		Kept:    len(kept),
		Dropped: dropped,
		Result:  result,
	}, nil
}

// AnalyzeFile opens path and analyzes its contents.
func (s *Service) AnalyzeFile(ctx context.Context, path, titleFilter string) (*Analysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if SourceFromContext(ctx) == "" {
		ctx = ContextWithSource(ctx, filepath.Base(path))
	}
	return s.Analyze(ctx, f, titleFilter)
}

// AnalyzeLimited runs Analyze inside a limiter slot with the configured
// timeout. Returns ErrTooManyAnalyses if no slot frees up in time.
func (s *Service) AnalyzeLimited(ctx context.Context, r io.Reader, titleFilter string) (*Analysis, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.Analyze(ctx, r, titleFilter)
}

// WaitForAnalyses blocks until every limited run has finished or ctx ends.
func (s *Service) WaitForAnalyses(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
