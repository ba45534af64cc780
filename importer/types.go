package importer

// previewCap bounds the flagged and error samples returned to the caller, so
// a pathological file cannot produce an unbounded response payload. Full
// counts are always tracked.
const previewCap = 10

// Result is the synchronous response for one import run.
type Result struct {
	Success        bool         `json:"success"`
	RunID          string       `json:"run_id,omitempty"`
	Total          int          `json:"total"`
	Inserted       int          `json:"inserted"`
	Updated        int          `json:"updated"`
	Flagged        int          `json:"flagged"`
	Duplicates     int          `json:"duplicates"`
	Errors         int          `json:"errors"`
	FlaggedPreview []FlaggedRow `json:"flagged_preview"`
	ErrorsDetail   []RowError   `json:"errors_detail"`
	Message        string       `json:"message"`
}

// FlaggedRow is one entry in the bounded flagged preview.
type FlaggedRow struct {
	Reason       string `json:"reason"`
	ClientName   string `json:"client_name"`
	ProviderName string `json:"provider_name"`
	ServiceDate  string `json:"service_date"`
	Insurance    string `json:"insurance,omitempty"`
	Row          int    `json:"row"`
}

// RowError is one entry in the bounded row-error detail.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}
