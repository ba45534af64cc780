package importer

import "testing"

func TestComputeMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  *int32
	}{
		{"one hour meridiem", "09:00 AM", "10:00 AM", int32p(60)},
		{"unpadded meridiem", "9:00 AM", "10:30 AM", int32p(90)},
		{"24 hour", "13:00", "14:30", int32p(90)},
		{"crossing midnight floors at zero", "11:00 PM", "12:00 AM", int32p(0)},
		{"missing start", "", "10:00", nil},
		{"missing end", "10:00", "", nil},
		{"unparsable", "noonish", "10:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeMinutes(tt.start, tt.end)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("computeMinutes(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("computeMinutes(%q, %q) = %d, want %d", tt.start, tt.end, *got, *tt.want)
			}
			if got != nil && *got < 0 {
				t.Errorf("computeMinutes(%q, %q) negative: %d", tt.start, tt.end, *got)
			}
		})
	}
}

func TestResolveMinutesPrecedence(t *testing.T) {
	// A valid non-negative minutes column wins over the computed duration.
	got := resolveMinutes("45", "09:00 AM", "10:00 AM")
	if got == nil || *got != 45 {
		t.Errorf("resolveMinutes explicit = %v, want 45", got)
	}

	// Invalid or negative minutes fall back to computation.
	got = resolveMinutes("-5", "09:00 AM", "10:00 AM")
	if got == nil || *got != 60 {
		t.Errorf("resolveMinutes negative fallback = %v, want 60", got)
	}
	got = resolveMinutes("abc", "09:00 AM", "10:00 AM")
	if got == nil || *got != 60 {
		t.Errorf("resolveMinutes junk fallback = %v, want 60", got)
	}

	if got = resolveMinutes("", "", ""); got != nil {
		t.Errorf("resolveMinutes empty = %v, want nil", got)
	}
}

func TestNormalizeDate(t *testing.T) {
	d, err := normalizeDate("01/15/2025")
	if err != nil {
		t.Fatalf("normalizeDate(01/15/2025): %v", err)
	}
	if got := d.Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("normalizeDate(01/15/2025) = %s, want 2025-01-15", got)
	}

	d, err = normalizeDate("2025-01-15")
	if err != nil {
		t.Fatalf("normalizeDate(2025-01-15): %v", err)
	}
	if got := d.Format("2006-01-02"); got != "2025-01-15" {
		t.Errorf("normalizeDate(2025-01-15) = %s, want unchanged", got)
	}

	// Day-first dates must be rejected, never silently misparsed.
	if _, err := normalizeDate("15-01-2025"); err == nil {
		t.Error("normalizeDate(15-01-2025) succeeded, want error")
	}
	if _, err := normalizeDate(""); err == nil {
		t.Error("normalizeDate(\"\") succeeded, want error")
	}
}

func TestSplitDateTime(t *testing.T) {
	date, clock, ok := splitDateTime("10/06/2025 12:00")
	if !ok || date != "10/06/2025" || clock != "12:00" {
		t.Errorf("splitDateTime = %q %q %v", date, clock, ok)
	}
	if _, _, ok := splitDateTime("10/06/2025"); ok {
		t.Error("splitDateTime without time component should not split")
	}
}

func int32p(n int32) *int32 { return &n }
