package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const findProviderByName = `-- name: FindProviderByName :one
SELECT id, name, created_at FROM providers WHERE lower(name) = lower($1) LIMIT 1
`

func (q *Queries) FindProviderByName(ctx context.Context, name string) (Provider, error) {
	row := q.db.QueryRow(ctx, findProviderByName, name)
	var i Provider
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const insertProvider = `-- name: InsertProvider :one
INSERT INTO providers (name) VALUES ($1) RETURNING id
`

func (q *Queries) InsertProvider(ctx context.Context, name string) (int32, error) {
	row := q.db.QueryRow(ctx, insertProvider, name)
	var id int32
	err := row.Scan(&id)
	return id, err
}

const findClientByName = `-- name: FindClientByName :one
SELECT id, name, created_at FROM clients WHERE lower(name) = lower($1) LIMIT 1
`

func (q *Queries) FindClientByName(ctx context.Context, name string) (Client, error) {
	row := q.db.QueryRow(ctx, findClientByName, name)
	var i Client
	err := row.Scan(&i.ID, &i.Name, &i.CreatedAt)
	return i, err
}

const insertClient = `-- name: InsertClient :one
INSERT INTO clients (name) VALUES ($1) RETURNING id
`

func (q *Queries) InsertClient(ctx context.Context, name string) (int32, error) {
	row := q.db.QueryRow(ctx, insertClient, name)
	var id int32
	err := row.Scan(&id)
	return id, err
}

const findPayerByName = `-- name: FindPayerByName :one
SELECT id, name, payer_id, billing_route, status, created_at
FROM payers WHERE lower(name) = lower($1) LIMIT 1
`

func (q *Queries) FindPayerByName(ctx context.Context, name string) (Payer, error) {
	row := q.db.QueryRow(ctx, findPayerByName, name)
	var i Payer
	err := row.Scan(&i.ID, &i.Name, &i.PayerID, &i.BillingRoute, &i.Status, &i.CreatedAt)
	return i, err
}

const findPayerByNameLike = `-- name: FindPayerByNameLike :one
SELECT id, name, payer_id, billing_route, status, created_at
FROM payers
WHERE name ILIKE '%' || replace(replace(replace($1, '\', '\\'), '%', '\%'), '_', '\_') || '%'
ORDER BY id LIMIT 1
`

// FindPayerByNameLike is the substring fallback used only for payer
// resolution: exact match first, then this. The search term is escaped so
// ILIKE metacharacters in payer names ("100% Health") match literally.
func (q *Queries) FindPayerByNameLike(ctx context.Context, name string) (Payer, error) {
	row := q.db.QueryRow(ctx, findPayerByNameLike, name)
	var i Payer
	err := row.Scan(&i.ID, &i.Name, &i.PayerID, &i.BillingRoute, &i.Status, &i.CreatedAt)
	return i, err
}

const insertPayer = `-- name: InsertPayer :one
INSERT INTO payers (name, payer_id, billing_route, status)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type InsertPayerParams struct {
	Name         string
	PayerID      pgtype.Text
	BillingRoute pgtype.Text
	Status       string
}

func (q *Queries) InsertPayer(ctx context.Context, arg InsertPayerParams) (int32, error) {
	row := q.db.QueryRow(ctx, insertPayer, arg.Name, arg.PayerID, arg.BillingRoute, arg.Status)
	var id int32
	err := row.Scan(&id)
	return id, err
}

const insertImportRun = `-- name: InsertImportRun :exec
INSERT INTO import_runs (id, source, file_name, started_at)
VALUES ($1, $2, $3, $4)
`

type InsertImportRunParams struct {
	ID        string
	Source    string
	FileName  string
	StartedAt pgtype.Timestamptz
}

func (q *Queries) InsertImportRun(ctx context.Context, arg InsertImportRunParams) error {
	_, err := q.db.Exec(ctx, insertImportRun, arg.ID, arg.Source, arg.FileName, arg.StartedAt)
	return err
}

const finishImportRun = `-- name: FinishImportRun :exec
UPDATE import_runs
SET finished_at   = $2,
    total_rows    = $3,
    inserted_rows = $4,
    updated_rows  = $5,
    flagged_rows  = $6,
    error_count   = $7,
    errors        = $8
WHERE id = $1
`

type FinishImportRunParams struct {
	ID           string
	FinishedAt   pgtype.Timestamptz
	TotalRows    int32
	InsertedRows int32
	UpdatedRows  int32
	FlaggedRows  int32
	ErrorCount   int32
	Errors       []byte
}

func (q *Queries) FinishImportRun(ctx context.Context, arg FinishImportRunParams) error {
	_, err := q.db.Exec(ctx, finishImportRun,
		arg.ID, arg.FinishedAt, arg.TotalRows, arg.InsertedRows,
		arg.UpdatedRows, arg.FlaggedRows, arg.ErrorCount, arg.Errors)
	return err
}

const getImportRun = `-- name: GetImportRun :one
SELECT id, source, file_name, started_at, finished_at,
       total_rows, inserted_rows, updated_rows, flagged_rows, error_count, errors
FROM import_runs WHERE id = $1
`

func (q *Queries) GetImportRun(ctx context.Context, id string) (ImportRun, error) {
	row := q.db.QueryRow(ctx, getImportRun, id)
	var i ImportRun
	err := row.Scan(&i.ID, &i.Source, &i.FileName, &i.StartedAt, &i.FinishedAt,
		&i.TotalRows, &i.InsertedRows, &i.UpdatedRows, &i.FlaggedRows, &i.ErrorCount, &i.Errors)
	return i, err
}

const listImportRuns = `-- name: ListImportRuns :many
SELECT id, source, file_name, started_at, finished_at,
       total_rows, inserted_rows, updated_rows, flagged_rows, error_count, errors
FROM import_runs ORDER BY started_at DESC LIMIT $1
`

func (q *Queries) ListImportRuns(ctx context.Context, limit int32) ([]ImportRun, error) {
	rows, err := q.db.Query(ctx, listImportRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ImportRun
	for rows.Next() {
		var i ImportRun
		if err := rows.Scan(&i.ID, &i.Source, &i.FileName, &i.StartedAt, &i.FinishedAt,
			&i.TotalRows, &i.InsertedRows, &i.UpdatedRows, &i.FlaggedRows, &i.ErrorCount, &i.Errors); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const insertStagingRecord = `-- name: InsertStagingRecord :exec
INSERT INTO import_staging (run_id, raw, reason) VALUES ($1, $2, $3)
`

type InsertStagingRecordParams struct {
	RunID  string
	Raw    []byte
	Reason string
}

func (q *Queries) InsertStagingRecord(ctx context.Context, arg InsertStagingRecordParams) error {
	_, err := q.db.Exec(ctx, insertStagingRecord, arg.RunID, arg.Raw, arg.Reason)
	return err
}

const listStagingByRun = `-- name: ListStagingByRun :many
SELECT id, run_id, raw, reason, created_at
FROM import_staging WHERE run_id = $1 ORDER BY id
`

func (q *Queries) ListStagingByRun(ctx context.Context, runID string) ([]StagingRecord, error) {
	rows, err := q.db.Query(ctx, listStagingByRun, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []StagingRecord
	for rows.Next() {
		var i StagingRecord
		if err := rows.Scan(&i.ID, &i.RunID, &i.Raw, &i.Reason, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const findSessionByExternalID = `-- name: FindSessionByExternalID :one
SELECT id FROM sessions
WHERE external_source = $1 AND external_session_id = $2
LIMIT 1
`

type FindSessionByExternalIDParams struct {
	ExternalSource    string
	ExternalSessionID string
}

func (q *Queries) FindSessionByExternalID(ctx context.Context, arg FindSessionByExternalIDParams) (int64, error) {
	row := q.db.QueryRow(ctx, findSessionByExternalID, arg.ExternalSource, arg.ExternalSessionID)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const findSessionByNaturalKey = `-- name: FindSessionByNaturalKey :one
SELECT id FROM sessions
WHERE provider_id = $1 AND client_id = $2 AND session_date = $3
  AND start_time = $4 AND end_time = $5
LIMIT 1
`

type FindSessionByNaturalKeyParams struct {
	ProviderID  int32
	ClientID    int32
	SessionDate pgtype.Date
	StartTime   string
	EndTime     string
}

func (q *Queries) FindSessionByNaturalKey(ctx context.Context, arg FindSessionByNaturalKeyParams) (int64, error) {
	row := q.db.QueryRow(ctx, findSessionByNaturalKey,
		arg.ProviderID, arg.ClientID, arg.SessionDate, arg.StartTime, arg.EndTime)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const insertSession = `-- name: InsertSession :one
INSERT INTO sessions (
    provider_id, client_id, payer_id, session_date, start_time, end_time,
    minutes, note_submitted, billing_status, client_type, primary_insurance,
    billing_route, external_source, external_session_id, is_duplicate, imported_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
)
RETURNING id
`

type InsertSessionParams struct {
	ProviderID        int32
	ClientID          int32
	PayerID           pgtype.Int4
	SessionDate       pgtype.Date
	StartTime         string
	EndTime           string
	Minutes           pgtype.Int4
	NoteSubmitted     bool
	BillingStatus     string
	ClientType        pgtype.Text
	PrimaryInsurance  pgtype.Text
	BillingRoute      pgtype.Text
	ExternalSource    pgtype.Text
	ExternalSessionID pgtype.Text
	IsDuplicate       bool
	ImportedAt        pgtype.Timestamptz
}

func (q *Queries) InsertSession(ctx context.Context, arg InsertSessionParams) (int64, error) {
	row := q.db.QueryRow(ctx, insertSession,
		arg.ProviderID, arg.ClientID, arg.PayerID, arg.SessionDate,
		arg.StartTime, arg.EndTime, arg.Minutes, arg.NoteSubmitted,
		arg.BillingStatus, arg.ClientType, arg.PrimaryInsurance, arg.BillingRoute,
		arg.ExternalSource, arg.ExternalSessionID, arg.IsDuplicate, arg.ImportedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const updateSession = `-- name: UpdateSession :exec
UPDATE sessions
SET provider_id         = $2,
    client_id           = $3,
    payer_id            = $4,
    session_date        = $5,
    start_time          = $6,
    end_time            = $7,
    minutes             = $8,
    note_submitted      = $9,
    billing_status      = $10,
    client_type         = $11,
    primary_insurance   = $12,
    billing_route       = $13,
    external_source     = $14,
    external_session_id = $15,
    is_duplicate        = $16,
    imported_at         = $17
WHERE id = $1
`

type UpdateSessionParams struct {
	ID                int64
	ProviderID        int32
	ClientID          int32
	PayerID           pgtype.Int4
	SessionDate       pgtype.Date
	StartTime         string
	EndTime           string
	Minutes           pgtype.Int4
	NoteSubmitted     bool
	BillingStatus     string
	ClientType        pgtype.Text
	PrimaryInsurance  pgtype.Text
	BillingRoute      pgtype.Text
	ExternalSource    pgtype.Text
	ExternalSessionID pgtype.Text
	IsDuplicate       bool
	ImportedAt        pgtype.Timestamptz
}

func (q *Queries) UpdateSession(ctx context.Context, arg UpdateSessionParams) error {
	_, err := q.db.Exec(ctx, updateSession,
		arg.ID, arg.ProviderID, arg.ClientID, arg.PayerID, arg.SessionDate,
		arg.StartTime, arg.EndTime, arg.Minutes, arg.NoteSubmitted,
		arg.BillingStatus, arg.ClientType, arg.PrimaryInsurance, arg.BillingRoute,
		arg.ExternalSource, arg.ExternalSessionID, arg.IsDuplicate, arg.ImportedAt)
	return err
}

const countSessions = `-- name: CountSessions :one
SELECT count(*) FROM sessions
`

func (q *Queries) CountSessions(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countSessions)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listSessions = `-- name: ListSessions :many
SELECT s.id, s.session_date, s.client_id, s.provider_id, s.minutes,
       s.note_submitted, s.billing_status, s.amount_billed, s.amount_paid,
       s.date_submitted, s.date_paid, c.name AS client_name, p.name AS provider_name
FROM sessions s
JOIN clients c ON c.id = s.client_id
JOIN providers p ON p.id = s.provider_id
ORDER BY s.session_date DESC, s.id DESC
`

type ListSessionsRow struct {
	ID            int64
	SessionDate   pgtype.Date
	ClientID      int32
	ProviderID    int32
	Minutes       pgtype.Int4
	NoteSubmitted bool
	BillingStatus string
	AmountBilled  pgtype.Numeric
	AmountPaid    pgtype.Numeric
	DateSubmitted pgtype.Date
	DatePaid      pgtype.Date
	ClientName    string
	ProviderName  string
}

func (q *Queries) ListSessions(ctx context.Context) ([]ListSessionsRow, error) {
	rows, err := q.db.Query(ctx, listSessions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListSessionsRow
	for rows.Next() {
		var i ListSessionsRow
		if err := rows.Scan(&i.ID, &i.SessionDate, &i.ClientID, &i.ProviderID,
			&i.Minutes, &i.NoteSubmitted, &i.BillingStatus, &i.AmountBilled,
			&i.AmountPaid, &i.DateSubmitted, &i.DatePaid, &i.ClientName, &i.ProviderName); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const getProfile = `-- name: GetProfile :one
SELECT id, full_name, role FROM profiles WHERE id = $1 LIMIT 1
`

func (q *Queries) GetProfile(ctx context.Context, id string) (Profile, error) {
	row := q.db.QueryRow(ctx, getProfile, id)
	var i Profile
	err := row.Scan(&i.ID, &i.FullName, &i.Role)
	return i, err
}
