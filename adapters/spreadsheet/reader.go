package spreadsheet

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Reader turns an uploaded spreadsheet into raw string rows. The importer
// layer owns header mapping and validation; this layer only extracts cells.
type Reader struct {
	fileName string
	fileType string // "xlsx" or "csv"
}

// NewReader picks the parser from the uploaded file's extension. Anything
// that is not .csv is treated as XLSX.
func NewReader(fileName string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(fileName)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{fileName: fileName, fileType: fileType}
}

// Rows extracts all rows from the upload, header included.
func (r *Reader) Rows(data []byte) ([][]string, error) {
	switch r.fileType {
	case "csv":
		return r.csvRows(data), nil
	default:
		return r.xlsxRows(data)
	}
}

// csvRows splits on newline then comma. Quoted fields are not handled; the
// upload templates never quote, and commas inside values will shift columns.
func (r *Reader) csvRows(data []byte) [][]string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var rows [][]string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := strings.Split(line, ",")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	return rows
}

// xlsxRows reads the first sheet of the workbook.
func (r *Reader) xlsxRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	for _, row := range rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}
	return rows, nil
}
