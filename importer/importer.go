// Package importer reconciles SimplePractice CSV exports into the relational
// store: it maps heterogeneous column headers to a canonical schema, resolves
// providers, clients and payers via lookup-or-create, computes derived fields,
// and upserts one session per row while accumulating run-level statistics.
package importer

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/sirupsen/logrus"

	"fscportal/db"
)

// Source identifies rows imported by this pipeline in sessions.external_source.
const Source = "simplepractice"

const defaultBillingRoute = "simplepractice"

// noteSubmittedStatuses maps note status strings to the submitted flag.
var noteSubmittedStatuses = map[string]bool{
	"completed": true,
	"submitted": true,
	"finalized": true,
	"complete":  true,
}

type Importer struct {
	q   *db.Queries
	log *logrus.Logger
}

func New(q *db.Queries, log *logrus.Logger) *Importer {
	return &Importer{q: q, log: log}
}

// runState accumulates counters and bounded previews for one run. The
// counters are mutually informative but not a strict partition: an updated
// row is also counted as a duplicate.
type runState struct {
	runID          string
	total          int
	inserted       int
	updated        int
	flagged        int
	duplicates     int
	errCount       int
	flaggedPreview []FlaggedRow
	errorsDetail   []RowError

	// find-or-create caches, keyed by lowercased name, scoped to this run
	providers map[string]int32
	clients   map[string]int32
	payers    map[string]int32
}

func newRunState(runID string) *runState {
	return &runState{
		runID:          runID,
		flaggedPreview: []FlaggedRow{},
		errorsDetail:   []RowError{},
		providers:      make(map[string]int32),
		clients:        make(map[string]int32),
		payers:         make(map[string]int32),
	}
}

func (st *runState) rowError(rowNum int, err error) {
	st.errCount++
	if len(st.errorsDetail) < previewCap {
		st.errorsDetail = append(st.errorsDetail, RowError{Row: rowNum, Error: err.Error()})
	}
}

func (st *runState) result(success bool, message string) *Result {
	return &Result{
		Success:        success,
		RunID:          st.runID,
		Total:          st.total,
		Inserted:       st.inserted,
		Updated:        st.updated,
		Flagged:        st.flagged,
		Duplicates:     st.duplicates,
		Errors:         st.errCount,
		FlaggedPreview: st.flaggedPreview,
		ErrorsDetail:   st.errorsDetail,
		Message:        message,
	}
}

// Run processes one uploaded file synchronously: single pass, no backtracking,
// no transaction around the run. Per-row faults become counters and log
// entries; only the initial run-record insert aborts the import. The run
// record is finalized on every exit path since it is the only durable audit
// trail of the run.
func (imp *Importer) Run(ctx context.Context, fileName string, file io.Reader) (*Result, error) {
	runID := uuid.New().String()
	err := imp.q.InsertImportRun(ctx, db.InsertImportRunParams{
		ID:        runID,
		Source:    Source,
		FileName:  fileName,
		StartedAt: nowTz(),
	})
	if err != nil {
		return nil, fmt.Errorf("create import run: %w", err)
	}
	imp.log.WithFields(logrus.Fields{"run_id": runID, "file": fileName}).Info("import started")

	st := newRunState(runID)
	defer imp.finalize(ctx, st)

	rr, err := newRowReader(file)
	if err != nil {
		st.rowError(1, err)
		return st.result(false, "Could not parse CSV header"), nil
	}

	for {
		raw, rowNum, err := rr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			st.total++
			st.rowError(rowNum, err)
			// A CSV syntax fault is scoped to one row; anything else comes
			// from the underlying reader and will not clear on retry, so the
			// pass is aborted and the run finalized with what it has.
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				imp.log.WithFields(logrus.Fields{"run_id": st.runID, "row": rowNum}).
					WithError(err).Error("read aborted")
				return st.result(false, "File could not be read completely"), nil
			}
			continue
		}
		st.total++
		imp.processRow(ctx, st, rowNum, raw)
	}

	imp.log.WithFields(logrus.Fields{
		"run_id":     st.runID,
		"total":      st.total,
		"inserted":   st.inserted,
		"updated":    st.updated,
		"flagged":    st.flagged,
		"duplicates": st.duplicates,
		"errors":     st.errCount,
	}).Info("import complete")

	msg := fmt.Sprintf("Successfully imported %d new sessions, updated %d existing sessions",
		st.inserted, st.updated)
	return st.result(true, msg), nil
}

// processRow runs the per-row state machine: parse, required-field gate, date
// normalization, entity resolution, derived fields, upsert. Every failure is
// converted to a flag or row error; nothing propagates out.
func (imp *Importer) processRow(ctx context.Context, st *runState, rowNum int, raw map[string]string) {
	row := resolveRow(raw)

	// Required-field gate: provider, client and service date must all be
	// present; otherwise flag, stage and move on.
	if row.ClientName == "" || row.ProviderName == "" || row.ServiceDate == "" {
		var missing []string
		if row.ClientName == "" {
			missing = append(missing, "client")
		}
		if row.ProviderName == "" {
			missing = append(missing, "provider")
		}
		if row.ServiceDate == "" {
			missing = append(missing, "date")
		}
		imp.flag(ctx, st, rowNum, "missing_"+strings.Join(missing, ", "), row, raw)
		return
	}

	serviceDate, err := normalizeDate(row.ServiceDate)
	if err != nil {
		// A malformed date is a row error, distinct from the flagged outcome.
		st.rowError(rowNum, err)
		imp.log.WithFields(logrus.Fields{"run_id": st.runID, "row": rowNum}).
			WithError(err).Error("row failed")
		return
	}

	providerID, err := imp.findOrCreateProvider(ctx, st, row.ProviderName)
	if err != nil {
		imp.flag(ctx, st, rowNum, "provider_resolution_failed", row, raw)
		return
	}
	clientID, err := imp.findOrCreateClient(ctx, st, row.ClientName)
	if err != nil {
		imp.flag(ctx, st, rowNum, "client_resolution_failed", row, raw)
		return
	}

	// Payer resolution only applies when an insurance string is present; its
	// failure is a flaggable outcome of its own. Absent insurance means
	// self-pay and a null payer.
	var payerID pgtype.Int4
	if row.PrimaryInsurance != "" {
		id, err := imp.findOrCreatePayer(ctx, st, row.PrimaryInsurance, row.BillingRoute)
		if err != nil {
			imp.flag(ctx, st, rowNum, "payer_creation_failed: "+row.PrimaryInsurance, row, raw)
			return
		}
		payerID = pgtype.Int4{Int32: id, Valid: true}
	}

	minutes := resolveMinutes(row.Minutes, row.StartTime, row.EndTime)
	noteSubmitted := noteSubmittedStatuses[strings.ToLower(row.Status)]
	billingStatus := "pending"
	if noteSubmitted {
		billingStatus = "completed"
	}

	// Dedup key: external session id when present, else the natural composite
	// key. An existing match is updated and marked duplicate; re-importing the
	// same file is idempotent through this path.
	var existingID int64
	found := false
	if row.ExternalSessionID != "" {
		existingID, err = imp.q.FindSessionByExternalID(ctx, db.FindSessionByExternalIDParams{
			ExternalSource:    Source,
			ExternalSessionID: row.ExternalSessionID,
		})
	} else {
		existingID, err = imp.q.FindSessionByNaturalKey(ctx, db.FindSessionByNaturalKeyParams{
			ProviderID:  providerID,
			ClientID:    clientID,
			SessionDate: dateOf(serviceDate),
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
		})
	}
	switch {
	case err == nil:
		found = true
	case errors.Is(err, pgx.ErrNoRows):
	default:
		st.rowError(rowNum, fmt.Errorf("session lookup: %w", err))
		return
	}

	if found {
		err = imp.q.UpdateSession(ctx, db.UpdateSessionParams{
			ID:                existingID,
			ProviderID:        providerID,
			ClientID:          clientID,
			PayerID:           payerID,
			SessionDate:       dateOf(serviceDate),
			StartTime:         row.StartTime,
			EndTime:           row.EndTime,
			Minutes:           int4OrNull(minutes),
			NoteSubmitted:     noteSubmitted,
			BillingStatus:     billingStatus,
			ClientType:        textOrNull(row.ClientType),
			PrimaryInsurance:  textOrNull(row.PrimaryInsurance),
			BillingRoute:      textOrNull(row.BillingRoute),
			ExternalSource:    textOrNull(Source),
			ExternalSessionID: textOrNull(row.ExternalSessionID),
			IsDuplicate:       true,
			ImportedAt:        nowTz(),
		})
		if err != nil {
			st.rowError(rowNum, fmt.Errorf("update session: %w", err))
			return
		}
		st.updated++
		st.duplicates++
		return
	}

	_, err = imp.q.InsertSession(ctx, db.InsertSessionParams{
		ProviderID:        providerID,
		ClientID:          clientID,
		PayerID:           payerID,
		SessionDate:       dateOf(serviceDate),
		StartTime:         row.StartTime,
		EndTime:           row.EndTime,
		Minutes:           int4OrNull(minutes),
		NoteSubmitted:     noteSubmitted,
		BillingStatus:     billingStatus,
		ClientType:        textOrNull(row.ClientType),
		PrimaryInsurance:  textOrNull(row.PrimaryInsurance),
		BillingRoute:      textOrNull(row.BillingRoute),
		ExternalSource:    textOrNull(Source),
		ExternalSessionID: textOrNull(row.ExternalSessionID),
		IsDuplicate:       false,
		ImportedAt:        nowTz(),
	})
	if err != nil {
		st.rowError(rowNum, fmt.Errorf("insert session: %w", err))
		return
	}
	st.inserted++
}

// flag records a structurally incomplete or unresolvable row: counted, staged
// for manual review, and sampled into the bounded preview. Never blocks the
// run; a staging write failure is logged and dropped.
func (imp *Importer) flag(ctx context.Context, st *runState, rowNum int, reason string, row canonicalRow, raw map[string]string) {
	st.flagged++
	if len(st.flaggedPreview) < previewCap {
		st.flaggedPreview = append(st.flaggedPreview, FlaggedRow{
			Reason:       reason,
			ClientName:   orUnknown(row.ClientName),
			ProviderName: orUnknown(row.ProviderName),
			ServiceDate:  orUnknown(row.ServiceDate),
			Insurance:    row.PrimaryInsurance,
			Row:          rowNum,
		})
	}
	imp.log.WithFields(logrus.Fields{"run_id": st.runID, "row": rowNum, "reason": reason}).
		Warn("row flagged")

	rawJSON, err := json.Marshal(raw)
	if err != nil {
		rawJSON = []byte("{}")
	}
	err = imp.q.InsertStagingRecord(ctx, db.InsertStagingRecordParams{
		RunID:  st.runID,
		Raw:    rawJSON,
		Reason: reason,
	})
	if err != nil {
		imp.log.WithField("run_id", st.runID).WithError(err).Error("staging write failed")
	}
}

func (imp *Importer) findOrCreateProvider(ctx context.Context, st *runState, name string) (int32, error) {
	key := strings.ToLower(name)
	if id, ok := st.providers[key]; ok {
		return id, nil
	}
	p, err := imp.q.FindProviderByName(ctx, name)
	if err == nil {
		st.providers[key] = p.ID
		return p.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("find provider %q: %w", name, err)
	}
	id, err := imp.q.InsertProvider(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create provider %q: %w", name, err)
	}
	st.providers[key] = id
	return id, nil
}

func (imp *Importer) findOrCreateClient(ctx context.Context, st *runState, name string) (int32, error) {
	key := strings.ToLower(name)
	if id, ok := st.clients[key]; ok {
		return id, nil
	}
	c, err := imp.q.FindClientByName(ctx, name)
	if err == nil {
		st.clients[key] = c.ID
		return c.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("find client %q: %w", name, err)
	}
	id, err := imp.q.InsertClient(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create client %q: %w", name, err)
	}
	st.clients[key] = id
	return id, nil
}

// findOrCreatePayer resolves an insurance string: case-insensitive exact
// match, then substring match, then create with the parsed name and external
// code. Lookup-then-insert with no lock; concurrent imports can race and
// create twin payers (documented limitation).
func (imp *Importer) findOrCreatePayer(ctx context.Context, st *runState, insurance, billingRoute string) (int32, error) {
	name, code := parseInsurance(insurance)
	key := strings.ToLower(name)
	if id, ok := st.payers[key]; ok {
		return id, nil
	}

	p, err := imp.q.FindPayerByName(ctx, name)
	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		p, err = imp.q.FindPayerByNameLike(ctx, name)
	}
	if err == nil {
		st.payers[key] = p.ID
		return p.ID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("find payer %q: %w", name, err)
	}

	var payerCode pgtype.Text
	if code != nil {
		payerCode = textOrNull(*code)
	}
	id, err := imp.q.InsertPayer(ctx, db.InsertPayerParams{
		Name:         name,
		PayerID:      payerCode,
		BillingRoute: textOrNull(billingRoute),
		Status:       "Active",
	})
	if err != nil {
		return 0, fmt.Errorf("create payer %q: %w", name, err)
	}
	st.payers[key] = id
	return id, nil
}

// finalize writes finished_at plus final counters and the truncated error
// list to the run record. Runs on every exit path, including after the
// request context is canceled: the run record is the only durable audit
// trail, so the write is detached from request cancelation.
func (imp *Importer) finalize(ctx context.Context, st *runState) {
	ctx = context.WithoutCancel(ctx)
	errorsJSON, err := json.Marshal(st.errorsDetail)
	if err != nil {
		errorsJSON = []byte("[]")
	}
	err = imp.q.FinishImportRun(ctx, db.FinishImportRunParams{
		ID:           st.runID,
		FinishedAt:   nowTz(),
		TotalRows:    int32(st.total),
		InsertedRows: int32(st.inserted),
		UpdatedRows:  int32(st.updated),
		FlaggedRows:  int32(st.flagged),
		ErrorCount:   int32(st.errCount),
		Errors:       errorsJSON,
	})
	if err != nil {
		imp.log.WithField("run_id", st.runID).WithError(err).Error("finalize import run failed")
	}
}

// pgtype helpers

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func int4OrNull(n *int32) pgtype.Int4 {
	if n == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *n, Valid: true}
}

func dateOf(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: true}
}

func nowTz() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: time.Now().UTC(), Valid: true}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
