package file

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	domain "github.com/campushub/user-gateway/internal/domain/user"
)

// recordColumns are the recognized header names of an upload. The header
// row maps columns by name, so column order does not matter.
var recordColumns = []string{"email", "password", "role", "given_name", "family_name", "name"}

// RecordSource reads one uploaded tabular file (.csv or .xlsx) and removes
// it when closed, whatever the batch outcome was.
type RecordSource struct {
	path string
}

func NewRecordSource(path string) (*RecordSource, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		return &RecordSource{path: path}, nil
	default:
		return nil, fmt.Errorf("unsupported upload type %q: expected .csv or .xlsx", filepath.Ext(path))
	}
}

// Records parses the whole file. The header row is consumed for column
// mapping and excluded from record positions.
func (s *RecordSource) Records() ([]domain.Record, error) {
	if strings.ToLower(filepath.Ext(s.path)) == ".xlsx" {
		return s.readXLSX()
	}
	return s.readCSV()
}

// Close deletes the backing upload file.
func (s *RecordSource) Close() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

func (s *RecordSource) readCSV() ([]domain.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := mapColumns(header)

	var records []domain.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(records)+1, err)
		}
		records = append(records, rowToRecord(row, columns))
	}

	return records, nil
}

func (s *RecordSource) readXLSX() ([]domain.Record, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := mapColumns(rows[0])

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, rowToRecord(row, columns))
	}

	return records, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(recordColumns))
	for _, name := range recordColumns {
		columns[name] = -1
	}
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, ok := columns[name]; ok {
			columns[name] = i
		}
	}
	return columns
}

func rowToRecord(row []string, columns map[string]int) domain.Record {
	cell := func(name string) string {
		idx := columns[name]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	return domain.Record{
		Email:      cell("email"),
		Password:   cell("password"),
		Role:       cell("role"),
		GivenName:  cell("given_name"),
		FamilyName: cell("family_name"),
		Name:       cell("name"),
	}
}
