// Package repolist reads repository URLs out of a CSV column.
//
// The CSV is parsed with full quoting support: fields may be quoted and
// contain embedded commas. The header row is parsed once into a
// name-to-index mapping and the configured column must exist.
package repolist

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ColumnNotFoundError indicates the configured URL column is missing
// from the CSV header row.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found, available: %s",
		e.Column, strings.Join(e.Available, ", "))
}

// ReadURLs reads the CSV at path and returns the cleaned values of the
// given column, in row order. Rows with an empty value (after trimming
// whitespace and stray quote characters) are skipped. Rows shorter than
// the column index are skipped as well.
func ReadURLs(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return readURLs(f, column)
}

func readURLs(r io.Reader, column string) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may have trailing fields missing
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	idx := -1
	for i, name := range header {
		if strings.TrimSpace(name) == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		available := make([]string, len(header))
		for i, name := range header {
			available[i] = strings.TrimSpace(name)
		}
		return nil, &ColumnNotFoundError{Column: column, Available: available}
	}

	var urls []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		if idx >= len(row) {
			continue
		}
		if url := clean(row[idx]); url != "" {
			urls = append(urls, url)
		}
	}
	return urls, nil
}

// clean strips surrounding whitespace and stray quote characters from a
// field value. Double-quoted values are already unquoted by the CSV
// reader; this handles hand-edited rows with extra quoting.
func clean(v string) string {
	v = strings.TrimSpace(v)
	v = strings.Trim(v, `"'`)
	return strings.TrimSpace(v)
}
