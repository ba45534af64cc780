package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type sessionView struct {
	ID            int64    `json:"id"`
	SessionDate   string   `json:"session_date"`
	ClientID      int32    `json:"client_id"`
	ProviderID    int32    `json:"provider_id"`
	ClientName    string   `json:"client_name"`
	ProviderName  string   `json:"provider_name"`
	Minutes       *int32   `json:"minutes"`
	NoteSubmitted bool     `json:"note_submitted"`
	BillingStatus string   `json:"billing_status"`
	AmountBilled  *float64 `json:"amount_billed"`
	AmountPaid    *float64 `json:"amount_paid"`
	DateSubmitted *string  `json:"date_submitted"`
	DatePaid      *string  `json:"date_paid"`
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.q.ListSessions(r.Context())
	if err != nil {
		s.log.WithError(err).Error("list sessions failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	out := make([]sessionView, 0, len(rows))
	for _, row := range rows {
		out = append(out, sessionView{
			ID:            row.ID,
			SessionDate:   row.SessionDate.Time.Format("2006-01-02"),
			ClientID:      row.ClientID,
			ProviderID:    row.ProviderID,
			ClientName:    row.ClientName,
			ProviderName:  row.ProviderName,
			Minutes:       int4Ptr(row.Minutes),
			NoteSubmitted: row.NoteSubmitted,
			BillingStatus: row.BillingStatus,
			AmountBilled:  numericPtr(row.AmountBilled),
			AmountPaid:    numericPtr(row.AmountPaid),
			DateSubmitted: datePtr(row.DateSubmitted),
			DatePaid:      datePtr(row.DatePaid),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type importRunView struct {
	ID           string          `json:"id"`
	Source       string          `json:"source"`
	FileName     string          `json:"file_name"`
	StartedAt    string          `json:"started_at"`
	FinishedAt   *string         `json:"finished_at"`
	TotalRows    int32           `json:"total_rows"`
	InsertedRows int32           `json:"inserted_rows"`
	UpdatedRows  int32           `json:"updated_rows"`
	FlaggedRows  int32           `json:"flagged_rows"`
	ErrorCount   int32           `json:"error_count"`
	Errors       json.RawMessage `json:"errors"`
}

func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	runs, err := s.q.ListImportRuns(r.Context(), 20)
	if err != nil {
		s.log.WithError(err).Error("list import runs failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	out := make([]importRunView, 0, len(runs))
	for _, run := range runs {
		errs := json.RawMessage(run.Errors)
		if len(errs) == 0 {
			errs = json.RawMessage("[]")
		}
		out = append(out, importRunView{
			ID:           run.ID,
			Source:       run.Source,
			FileName:     run.FileName,
			StartedAt:    run.StartedAt.Time.Format(time.RFC3339),
			FinishedAt:   tsPtr(run.FinishedAt),
			TotalRows:    run.TotalRows,
			InsertedRows: run.InsertedRows,
			UpdatedRows:  run.UpdatedRows,
			FlaggedRows:  run.FlaggedRows,
			ErrorCount:   run.ErrorCount,
			Errors:       errs,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleTestConnection probes each required table with a trivial query and
// reports per-table availability.
func (s *Server) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	tables := []string{"providers", "clients", "payers", "sessions", "import_runs", "import_staging"}
	status := make(map[string]string, len(tables))
	ok := true
	for _, table := range tables {
		_, err := s.pool.Exec(r.Context(), fmt.Sprintf("SELECT count(*) FROM %s LIMIT 1", table))
		if err != nil {
			status[table] = "error: " + err.Error()
			ok = false
			continue
		}
		status[table] = "available"
	}
	msg := "Database connection successful"
	if !ok {
		msg = "Database connection degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": ok,
		"message": msg,
		"tables":  status,
	})
}

// pgtype → JSON helpers

func int4Ptr(v pgtype.Int4) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}

func numericPtr(v pgtype.Numeric) *float64 {
	if !v.Valid {
		return nil
	}
	f, err := v.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return &f.Float64
}

func datePtr(v pgtype.Date) *string {
	if !v.Valid {
		return nil
	}
	s := v.Time.Format("2006-01-02")
	return &s
}

func tsPtr(v pgtype.Timestamptz) *string {
	if !v.Valid {
		return nil
	}
	s := v.Time.Format(time.RFC3339)
	return &s
}
