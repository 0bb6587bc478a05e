package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func parseCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a CSV document whose first row is the header.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv: no columns to parse from file")
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	// Drop a UTF-8 byte order mark left by spreadsheet exports.
	if len(header) > 0 {
		header[0] = trimBOM(header[0])
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return newTable(header, records), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\ufeff")
}
