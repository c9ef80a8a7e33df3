package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/JonMunkholm/modeest/internal/database"
	"github.com/JonMunkholm/modeest/internal/logging"
	"github.com/JonMunkholm/modeest/internal/mode"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrInvalidID        = errors.New("invalid analysis id")
	ErrFileTooLarge     = errors.New("file too large")
	ErrEmptyFile        = errors.New("empty file")
	ErrNoFile           = errors.New("no file provided")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// DefaultAnalysisTimeout bounds one AnalyzeUpload when the config sets none.
const DefaultAnalysisTimeout = 5 * time.Minute

// ServiceConfig holds the Service's tunables.
type ServiceConfig struct {
	MaxConcurrent int
	MaxWait       time.Duration
	Timeout       time.Duration
	MaxFileSize   int64 // 0 = unlimited
	MissingTokens []string
}

// Service runs analyses and keeps their results and the audit log.
type Service struct {
	db      DBTX
	cfg     ServiceConfig
	limiter *AnalysisLimiter
}

// NewService builds a Service over conn, usually a *pgxpool.Pool.
func NewService(conn DBTX, cfg ServiceConfig) *Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultAnalysisTimeout
	}
	return &Service{
		db:      conn,
		cfg:     cfg,
		limiter: NewAnalysisLimiter(cfg.MaxConcurrent, cfg.MaxWait),
	}
}

func (s *Service) logger(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// Ping checks the database when the connection supports it.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.db.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

// LimiterStatus reports analysis slot usage.
func (s *Service) LimiterStatus() AnalysisLimiterStatus {
	return s.limiter.Status()
}

// WaitForAnalyses blocks until running analyses finish or ctx is done.
func (s *Service) WaitForAnalyses(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// AnalyzeUpload analyzes a CSV, stores the report and audits it. size may be
// 0 when unknown; the size limit is then enforced while reading.
func (s *Service) AnalyzeUpload(ctx context.Context, fileName string, r io.Reader, size int64, opts AnalyzeOptions) (*Analysis, error) {
	if s.cfg.MaxFileSize > 0 {
		if size > s.cfg.MaxFileSize {
			return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, s.cfg.MaxFileSize)
		}
		r = &sizeLimitReader{r: r, remaining: s.cfg.MaxFileSize}
	}
	if opts.MissingTokens == nil {
		opts.MissingTokens = s.cfg.MissingTokens
	}

	log := logging.WithFields(ctx, "file", fileName, "method", opts.Method)

	if err := s.limiter.Acquire(ctx); err != nil {
		log.Warn("analysis rejected", "error", err)
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	start := time.Now()
	log.Info("analysis started", "size", size)

	report, err := AnalyzeColumns(ctx, r, size, opts)
	if err != nil {
		log.Warn("analysis failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	elapsed := time.Since(start)

	columns, err := json.Marshal(report.Columns)
	if err != nil {
		return nil, fmt.Errorf("marshal columns: %w", err)
	}

	row, err := db.New(s.db).InsertAnalysis(ctx, db.InsertAnalysisParams{
		ID:            pgtype.UUID{Bytes: uuid.New(), Valid: true},
		FileName:      fileName,
		Method:        string(report.Method),
		RemoveMissing: report.RemoveMissing,
		FirstKnown:    report.FirstKnown,
		RowCount:      int32(report.Rows),
		ColumnCount:   int32(len(report.Columns)),
		BytesRead:     report.BytesRead,
		DurationMs:    elapsed.Milliseconds(),
		Columns:       columns,
	})
	if err != nil {
		return nil, fmt.Errorf("store analysis: %w", err)
	}

	analysis, err := dbAnalysisToAnalysis(row)
	if err != nil {
		return nil, err
	}

	s.logAuditQuietly(ctx, AuditLogParams{
		Action:     ActionAnalysisCreate,
		AnalysisID: analysis.ID,
		Detail: map[string]any{
			"file":    fileName,
			"method":  report.Method,
			"rows":    report.Rows,
			"columns": len(report.Columns),
		},
	})

	log.Info("analysis completed",
		"analysis_id", analysis.ID,
		"rows", report.Rows,
		"columns", len(report.Columns),
		"duration_ms", elapsed.Milliseconds(),
	)
	return analysis, nil
}

// GetAnalysis returns a stored analysis.
func (s *Service) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	pgID := ToPgUUID(id)
	if !pgID.Valid {
		return nil, ErrInvalidID
	}
	row, err := db.New(s.db).GetAnalysis(ctx, pgID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis: %w", err)
	}
	return dbAnalysisToAnalysis(row)
}

// ListAnalyses returns stored analyses, newest first.
func (s *Service) ListAnalyses(ctx context.Context, limit, offset int) (*AnalysisPage, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	q := db.New(s.db)
	total, err := q.CountAnalyses(ctx)
	if err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}
	rows, err := q.ListAnalyses(ctx, db.ListAnalysesParams{Limit: int32(limit), Offset: int32(offset)})
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	page := &AnalysisPage{Analyses: make([]Analysis, 0, len(rows)), Total: total, Limit: limit, Offset: offset}
	for _, row := range rows {
		a, err := dbAnalysisToAnalysis(row)
		if err != nil {
			return nil, err
		}
		page.Analyses = append(page.Analyses, *a)
	}
	return page, nil
}

// DeleteAnalysis removes a stored analysis and audits the deletion.
func (s *Service) DeleteAnalysis(ctx context.Context, id string) error {
	pgID := ToPgUUID(id)
	if !pgID.Valid {
		return ErrInvalidID
	}
	n, err := db.New(s.db).DeleteAnalysis(ctx, pgID)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	if n == 0 {
		return ErrAnalysisNotFound
	}

	s.logAuditQuietly(ctx, AuditLogParams{Action: ActionAnalysisDelete, AnalysisID: id})
	s.logger(ctx).Info("analysis deleted", "analysis_id", id)
	return nil
}

// Estimate runs Estimate and, when req.Record is set, audits the call.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*EstimateResult, error) {
	res, err := Estimate(req)
	if err != nil {
		return nil, err
	}
	if req.Record {
		s.logAuditQuietly(ctx, AuditLogParams{
			Action: ActionEstimate,
			Detail: map[string]any{
				"method": res.Method,
				"length": res.Length,
				"result": res.Result,
			},
		})
	}
	return res, nil
}

func dbAnalysisToAnalysis(row db.Analysis) (*Analysis, error) {
	report := &ColumnReport{
		Method:        mode.Method(row.Method),
		RemoveMissing: row.RemoveMissing,
		FirstKnown:    row.FirstKnown,
		Rows:          int(row.RowCount),
		BytesRead:     row.BytesRead,
	}
	if err := json.Unmarshal(row.Columns, &report.Columns); err != nil {
		return nil, fmt.Errorf("decode columns: %w", err)
	}
	return &Analysis{
		ID:         PgUUIDToString(row.ID),
		FileName:   row.FileName,
		CreatedAt:  row.CreatedAt.Time,
		DurationMs: row.DurationMs,
		Report:     report,
	}, nil
}

// sizeLimitReader fails with ErrFileTooLarge once more than remaining bytes
// have been read.
type sizeLimitReader struct {
	r         io.Reader
	remaining int64
}

func (l *sizeLimitReader) Read(p []byte) (int, error) {
	if l.remaining < 0 {
		return 0, ErrFileTooLarge
	}
	if int64(len(p)) > l.remaining+1 {
		p = p[:l.remaining+1]
	}
	n, err := l.r.Read(p)
	l.remaining -= int64(n)
	if l.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
