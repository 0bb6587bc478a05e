package parser

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// parseXLSX reads the first sheet; its first row is the header.
func parseXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{Rows: []map[string]any{}}, nil
	}
	return newTable(rows[0], rows[1:]), nil
}
