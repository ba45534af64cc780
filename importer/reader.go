package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// rowReader streams a header-row-delimited CSV and emits one row at a time as
// a lowercased-header → value map. Column order is irrelevant; the alias table
// in columns.go handles format variation.
type rowReader struct {
	csv     *csv.Reader
	headers []string
	rowNum  int
}

func newRowReader(r io.Reader) (*rowReader, error) {
	bufReader := bufio.NewReaderSize(r, 64*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}
	if len(headerRow) > 0 {
		headerRow[0] = strings.TrimPrefix(headerRow[0], "\uFEFF")
	}

	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return &rowReader{
		csv:     reader,
		headers: headers,
		rowNum:  1,
	}, nil
}

// Next returns the next data row and its 1-based row number (the header is
// row 1, so data starts at 2). Empty rows are skipped. Returns io.EOF when
// done.
func (r *rowReader) Next() (map[string]string, int, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			if err == io.EOF {
				return nil, r.rowNum, io.EOF
			}
			r.rowNum++
			return nil, r.rowNum, err
		}
		r.rowNum++

		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}

		row := make(map[string]string, len(r.headers))
		for i, h := range r.headers {
			if h == "" || i >= len(record) {
				continue
			}
			// Sanitize to valid UTF-8; some exports arrive Windows-1252 encoded.
			row[h] = strings.ToValidUTF8(record[i], "�")
		}
		return row, r.rowNum, nil
	}
}
