package importer

import "strings"

// Canonical fields extracted from one CSV row. In-memory only; lives for one
// loop iteration.
type canonicalRow struct {
	ClientName        string
	ClientType        string
	ServiceDate       string
	ProviderName      string
	StartTime         string
	EndTime           string
	Minutes           string
	PrimaryInsurance  string
	BillingRoute      string
	Status            string
	ExternalSessionID string
}

// fieldAliases maps each canonical field to a priority-ordered list of
// accepted header names. Headers are matched lowercased and trimmed, so one
// entry covers every case variant ("Client", "client", "CLIENT").
// The lists cover both SimplePractice export revisions: the newer one uses
// "Date of Service"/"Clinician"/"Primary Insurance", the older one
// "Date added"/"Primary clinician"/"Primary insurance".
var fieldAliases = map[string][]string{
	"client_name":         {"client_name", "client", "client_full_name", "patient_name"},
	"client_type":         {"client type", "client_type"},
	"service_date":        {"date of service", "date added", "service_date", "date"},
	"provider_name":       {"clinician", "primary clinician", "provider", "provider_name"},
	"start_time":          {"start time", "start_time"},
	"end_time":            {"end time", "end_time"},
	"minutes":             {"minutes"},
	"primary_insurance":   {"primary insurance", "insurance", "primary_insurance"},
	"billing_route":       {"billing route", "billing_route"},
	"status":              {"status", "note_status"},
	"external_session_id": {"appointment id", "appointment_id", "external_session_id"},
}

// lookupAlias returns the first non-empty trimmed value among the aliases for
// the given canonical field, or "" if none is present. Extra and missing
// columns never fail the row.
func lookupAlias(row map[string]string, field string) string {
	for _, alias := range fieldAliases[field] {
		if v, ok := row[alias]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// resolveRow maps a raw row (lowercased header → value) to canonical fields.
// If no explicit start-time column exists but the date carries an embedded
// time component ("MM/DD/YYYY HH:MM"), the date is split into its two parts.
func resolveRow(row map[string]string) canonicalRow {
	c := canonicalRow{
		ClientName:        lookupAlias(row, "client_name"),
		ClientType:        lookupAlias(row, "client_type"),
		ServiceDate:       lookupAlias(row, "service_date"),
		ProviderName:      lookupAlias(row, "provider_name"),
		StartTime:         lookupAlias(row, "start_time"),
		EndTime:           lookupAlias(row, "end_time"),
		Minutes:           lookupAlias(row, "minutes"),
		PrimaryInsurance:  lookupAlias(row, "primary_insurance"),
		BillingRoute:      lookupAlias(row, "billing_route"),
		Status:            lookupAlias(row, "status"),
		ExternalSessionID: lookupAlias(row, "external_session_id"),
	}
	if c.BillingRoute == "" {
		c.BillingRoute = defaultBillingRoute
	}
	if c.StartTime == "" && strings.Contains(c.ServiceDate, " ") {
		if date, clock, ok := splitDateTime(c.ServiceDate); ok {
			c.ServiceDate = date
			c.StartTime = clock
		}
	}
	return c
}
