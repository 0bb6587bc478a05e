// Package parser reads uploaded files into plain Go values and summarizes them
// for the model prompt.
//
// Tabular formats (csv, xlsx) parse to *Table. JSON and YAML parse to the
// decoded tree, PDF to its plain text.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	app_errors "viz-ai/backend/internal/errors"
	"viz-ai/backend/internal/model"
)

// DetectType maps a file name to its parser family by extension.
func DetectType(fileName string) (model.FileType, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return model.FileTypeCSV, nil
	case ".json":
		return model.FileTypeJSON, nil
	case ".yaml", ".yml":
		return model.FileTypeYAML, nil
	case ".xlsx":
		return model.FileTypeXLSX, nil
	case ".pdf":
		return model.FileTypePDF, nil
	default:
		return "", fmt.Errorf("%w: %q", app_errors.ErrUnsupportedFileType, fileName)
	}
}

// ParseFile parses the file at path as the given type.
func ParseFile(path string, fileType model.FileType) (any, error) {
	switch fileType {
	case model.FileTypeCSV:
		return parseCSVFile(path)
	case model.FileTypeXLSX:
		return parseXLSX(path)
	case model.FileTypeJSON:
		return parseJSONFile(path)
	case model.FileTypeYAML:
		return parseYAMLFile(path)
	case model.FileTypePDF:
		return parsePDF(path)
	default:
		return nil, fmt.Errorf("%w: %s", app_errors.ErrUnsupportedFileType, fileType)
	}
}
