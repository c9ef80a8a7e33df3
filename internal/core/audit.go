package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	db "github.com/JonMunkholm/modeest/internal/database"
)

// AuditAction names an audited operation.
type AuditAction string

const (
	ActionAnalysisCreate AuditAction = "analysis_create"
	ActionAnalysisDelete AuditAction = "analysis_delete"
	ActionEstimate       AuditAction = "estimate"
	ActionRetentionPurge AuditAction = "retention_purge"
)

// AuditSeverity ranks audit entries for filtering.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// ErrAuditEntryNotFound is returned by GetAuditLogByID for an unknown id.
var ErrAuditEntryNotFound = errors.New("audit entry not found")

// DefaultAuditLimit is the page size when a filter does not set one.
const DefaultAuditLimit = 50

// AuditEntry is one row of the audit log.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     AuditAction    `json:"action"`
	Severity   AuditSeverity  `json:"severity"`
	AnalysisID string         `json:"analysisId,omitempty"`
	IPAddress  string         `json:"ipAddress,omitempty"`
	UserAgent  string         `json:"userAgent,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
	Reason     string         `json:"reason,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// AuditLogParams describes an entry to write. Client IP and user agent come
// from the RequestMeta on the context.
type AuditLogParams struct {
	Action     AuditAction
	AnalysisID string
	Detail     map[string]any
	Reason     string
}

// AuditLogFilter narrows GetAuditLog. Zero fields do not filter.
type AuditLogFilter struct {
	Action     AuditAction
	Severity   AuditSeverity
	AnalysisID string
	StartTime  time.Time
	EndTime    time.Time
	Limit      int
	Offset     int
}

// AuditLogPage is one page of the audit log plus the filtered total.
type AuditLogPage struct {
	Entries []AuditEntry `json:"entries"`
	Total   int64        `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionAnalysisDelete, ActionRetentionPurge:
		return SeverityHigh
	case ActionAnalysisCreate:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// LogAudit writes an audit entry.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	meta := RequestMetaFromContext(ctx)

	var detail []byte
	if params.Detail != nil {
		var err error
		if detail, err = json.Marshal(params.Detail); err != nil {
			return nil, fmt.Errorf("marshal audit detail: %w", err)
		}
	}

	row, err := db.New(s.db).InsertAuditLog(ctx, db.InsertAuditLogParams{
		ID:         pgtype.UUID{Bytes: uuid.New(), Valid: true},
		Action:     string(params.Action),
		Severity:   string(determineSeverity(params.Action)),
		AnalysisID: ToPgUUID(params.AnalysisID),
		IpAddress:  meta.addr(),
		UserAgent:  ToPgText(meta.UserAgent),
		Detail:     detail,
		Reason:     ToPgText(params.Reason),
	})
	if err != nil {
		return nil, fmt.Errorf("insert audit log: %w", err)
	}
	return dbAuditLogToEntry(row), nil
}

// logAuditQuietly records an entry without failing the caller; the operation
// being audited has already happened.
func (s *Service) logAuditQuietly(ctx context.Context, params AuditLogParams) {
	if _, err := s.LogAudit(ctx, params); err != nil {
		s.logger(ctx).Warn("audit log write failed", "action", params.Action, "error", err)
	}
}

const auditColumns = "id, action, severity, analysis_id, ip_address, user_agent, detail, reason, created_at"

// GetAuditLog returns the newest entries matching filter.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditLogFilter) (*AuditLogPage, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = DefaultAuditLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	wb := NewWhereBuilder()
	wb.Add("action", string(filter.Action))
	wb.Add("severity", string(filter.Severity))
	wb.AddAnalysisID(filter.AnalysisID)
	wb.AddTimeRange("created_at", filter.StartTime, filter.EndTime)
	where, args := wb.Build()

	var total int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM audit_log"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit log: %w", err)
	}

	n := wb.NextArgIndex()
	query := fmt.Sprintf("SELECT %s FROM audit_log%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		auditColumns, where, n, n+1)
	rows, err := s.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	page := &AuditLogPage{Entries: []AuditEntry{}, Total: total, Limit: filter.Limit, Offset: filter.Offset}
	for rows.Next() {
		var r db.AuditLog
		if err := rows.Scan(&r.ID, &r.Action, &r.Severity, &r.AnalysisID, &r.IpAddress,
			&r.UserAgent, &r.Detail, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		page.Entries = append(page.Entries, *dbAuditLogToEntry(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	return page, nil
}

// GetAuditLogByID returns one entry.
func (s *Service) GetAuditLogByID(ctx context.Context, id string) (*AuditEntry, error) {
	pgID := ToPgUUID(id)
	if !pgID.Valid {
		return nil, ErrInvalidID
	}
	row, err := db.New(s.db).GetAuditLogByID(ctx, pgID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAuditEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get audit entry: %w", err)
	}
	return dbAuditLogToEntry(row), nil
}

func dbAuditLogToEntry(row db.AuditLog) *AuditEntry {
	entry := &AuditEntry{
		ID:         PgUUIDToString(row.ID),
		Action:     AuditAction(row.Action),
		Severity:   AuditSeverity(row.Severity),
		AnalysisID: PgUUIDToString(row.AnalysisID),
		UserAgent:  row.UserAgent.String,
		Reason:     row.Reason.String,
		CreatedAt:  row.CreatedAt.Time,
	}
	if row.IpAddress != nil {
		entry.IPAddress = row.IpAddress.String()
	}
	if row.Detail != nil {
		_ = json.Unmarshal(row.Detail, &entry.Detail)
	}
	return entry
}
