package httpapi

import (
	"net/http"
	"strings"

	"fscportal/db"
	"fscportal/importer"
)

const maxUploadBytes = 32 << 20

// handleImport accepts a multipart CSV upload (field name "file") and runs
// the reconciler synchronously. Setup-phase faults produce success=false with
// a clear message; per-row faults are reported in aggregate, never as a raw
// stack trace.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusOK, &importer.Result{
			Success:        false,
			Errors:         1,
			FlaggedPreview: []importer.FlaggedRow{},
			ErrorsDetail:   []importer.RowError{},
			Message:        "Please upload a valid CSV file",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil || header.Filename == "" || !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		if file != nil {
			file.Close()
		}
		writeJSON(w, http.StatusOK, &importer.Result{
			Success:        false,
			Errors:         1,
			FlaggedPreview: []importer.FlaggedRow{},
			ErrorsDetail:   []importer.RowError{},
			Message:        "Please upload a valid CSV file",
		})
		return
	}
	defer file.Close()

	imp := importer.New(db.New(s.pool), s.log)
	result, err := imp.Run(r.Context(), header.Filename, file)
	if err != nil {
		// Run-fatal: the run record could not even be created.
		s.log.WithError(err).Error("import failed")
		writeJSON(w, http.StatusOK, &importer.Result{
			Success:        false,
			Errors:         1,
			FlaggedPreview: []importer.FlaggedRow{},
			ErrorsDetail:   []importer.RowError{},
			Message:        "Could not initialize import. Please check database connection.",
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
