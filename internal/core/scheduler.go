package core

// scheduler.go runs the retention job: stored analyses and audit entries
// older than their retention window are deleted, once at start and then on
// every tick until the context is cancelled. A failed purge is logged and
// retried on the next tick.

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/JonMunkholm/modeest/internal/database"
)

// RetentionConfig sets the retention windows. A non-positive day count keeps
// that table forever.
type RetentionConfig struct {
	AnalysisDays  int
	AuditDays     int
	CheckInterval time.Duration // default 24h
}

// RetentionResult reports one run of the retention job.
type RetentionResult struct {
	AnalysesPurged int64
	AuditPurged    int64
}

// StartRetentionScheduler blocks until ctx is done; run it in a goroutine.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}
	slog.Info("retention scheduler started",
		"analysis_days", cfg.AnalysisDays,
		"audit_days", cfg.AuditDays,
		"interval", cfg.CheckInterval,
	)

	s.runRetentionJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, cfg RetentionConfig) {
	start := time.Now()
	res, err := s.PurgeExpired(ctx, cfg, start)
	if err != nil {
		slog.Error("retention job failed", "error", err)
		return
	}
	slog.Info("retention job completed",
		"analyses_purged", res.AnalysesPurged,
		"audit_purged", res.AuditPurged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// PurgeExpired deletes rows older than the retention windows relative to now.
func (s *Service) PurgeExpired(ctx context.Context, cfg RetentionConfig, now time.Time) (RetentionResult, error) {
	var res RetentionResult
	q := db.New(s.db)

	if cutoff, ok := retentionCutoff(now, cfg.AnalysisDays); ok {
		n, err := q.PurgeAnalysesOlderThan(ctx, cutoff)
		if err != nil {
			return res, err
		}
		res.AnalysesPurged = n
		if n > 0 {
			s.logAuditQuietly(ctx, AuditLogParams{
				Action: ActionRetentionPurge,
				Detail: map[string]any{"analyses": n, "days": cfg.AnalysisDays},
			})
		}
	}

	if cutoff, ok := retentionCutoff(now, cfg.AuditDays); ok {
		n, err := q.PurgeAuditLogOlderThan(ctx, cutoff)
		if err != nil {
			return res, err
		}
		res.AuditPurged = n
	}
	return res, nil
}

func retentionCutoff(now time.Time, days int) (pgtype.Timestamptz, bool) {
	if days <= 0 {
		return pgtype.Timestamptz{}, false
	}
	return pgtype.Timestamptz{Time: now.AddDate(0, 0, -days), Valid: true}, true
}
