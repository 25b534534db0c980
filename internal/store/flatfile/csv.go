package flatfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readTable reads one header-first delimited table into loosely-typed row
// maps keyed by the header names. The returned rowErrs are per-row parse
// problems; the row is skipped and the rest of the table still loads. A
// non-nil err means the whole table is unreadable.
func readTable(path string) (rows []map[string]string, rowErrs []error, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, rowErrs, nil
}
