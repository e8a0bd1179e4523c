package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tabviz/tabviz/internal/domain"
	"github.com/xuri/excelize/v2"
)

// FileType constants
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// DetectFileType detects file type from filename
func DetectFileType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	return ext[1:]
}

// IsSupported checks if file type is supported
func IsSupported(fileType string) bool {
	return fileType == FileTypeCSV || fileType == FileTypeXLSX
}

// Parse decodes raw file bytes into a typed dataset. The returned
// dataset is fully cleaned: currency strings converted, infinities
// nulled, all-empty rows dropped. An empty or header-only file yields
// domain.ErrEmptyDataset.
func Parse(data []byte, fileType string) (*domain.Dataset, error) {
	var records [][]string
	var err error

	switch fileType {
	case FileTypeCSV:
		records, err = readCSV(data)
	case FileTypeXLSX:
		records, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, fileType)
	}
	if err != nil {
		return nil, err
	}

	return build(records)
}

func readCSV(data []byte) ([][]string, error) {
	if !utf8.Valid(data) {
		data = latin1ToUTF8(data)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

// latin1ToUTF8 reinterprets bytes as ISO-8859-1, the same fallback the
// csv path needs for legacy exports.
func latin1ToUTF8(data []byte) []byte {
	buf := make([]rune, len(data))
	for i, b := range data {
		buf[i] = rune(b)
	}
	return []byte(string(buf))
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// build turns header+rows into a typed dataset.
func build(records [][]string) (*domain.Dataset, error) {
	if len(records) < 2 {
		return nil, domain.ErrEmptyDataset
	}

	header := records[0]
	if len(header) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	rows := dropEmptyRows(records[1:], len(header))
	if len(rows) == 0 {
		return nil, domain.ErrEmptyDataset
	}

	columns := make([]domain.Column, len(header))
	for i, name := range header {
		raw := make([]string, len(rows))
		for j, row := range rows {
			if i < len(row) {
				raw[j] = strings.TrimSpace(row[i])
			}
		}
		columns[i] = inferColumn(strings.TrimSpace(name), raw)
	}

	return domain.NewDataset(columns), nil
}

// dropEmptyRows removes rows where every cell is null-ish and pads
// short rows up to the header width.
func dropEmptyRows(rows [][]string, width int) [][]string {
	var kept [][]string
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if !isNullToken(strings.TrimSpace(cell)) {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		kept = append(kept, row)
	}
	return kept
}
