package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Provider struct {
	ID        int32
	Name      string
	CreatedAt pgtype.Timestamptz
}

type Client struct {
	ID        int32
	Name      string
	CreatedAt pgtype.Timestamptz
}

type Payer struct {
	ID           int32
	Name         string
	PayerID      pgtype.Text
	BillingRoute pgtype.Text
	Status       string
	CreatedAt    pgtype.Timestamptz
}

type Session struct {
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
	AmountBilled      pgtype.Numeric
	AmountPaid        pgtype.Numeric
	DateSubmitted     pgtype.Date
	DatePaid          pgtype.Date
	ExternalSource    pgtype.Text
	ExternalSessionID pgtype.Text
	IsDuplicate       bool
	ImportedAt        pgtype.Timestamptz
}

type ImportRun struct {
	ID           string
	Source       string
	FileName     string
	StartedAt    pgtype.Timestamptz
	FinishedAt   pgtype.Timestamptz
	TotalRows    int32
	InsertedRows int32
	UpdatedRows  int32
	FlaggedRows  int32
	ErrorCount   int32
	Errors       []byte
}

type StagingRecord struct {
	ID        int64
	RunID     string
	Raw       []byte
	Reason    string
	CreatedAt pgtype.Timestamptz
}

type Profile struct {
	ID       string
	FullName pgtype.Text
	Role     pgtype.Text
}
