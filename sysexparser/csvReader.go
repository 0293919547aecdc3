package sysexparser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Registry CSV column names
const (
	ColumnID           = "id"
	ColumnManufacturer = "manufacturer"
	ColumnGroup        = "group"
	ColumnReserved     = "reserved"
	ColumnStatus       = "status"
)

var requiredColumns = []string{ColumnID, ColumnManufacturer, ColumnGroup, ColumnReserved}

// decodeSource returns a UTF-8 reader over data. A UTF-8 byte order mark is dropped,
// and anything that is not valid UTF-8 is read as ISO-8859-1.
func decodeSource(data []byte) io.Reader {
	if utf8.Valid(data) {
		return transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(transform.Nop))
	}
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(data))
}

// ReadRows reads the registry CSV, mapping every record onto the header row.
// Blank lines are skipped, short records are padded with empty cells.
func ReadRows(r io.Reader) ([]entities.Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	reader := csv.NewReader(decodeSource(data))
	reader.FieldsPerRecord = -1
	// Published names such as `Foo "Bar" Inc` carry bare quotes
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, ColumnID)}
	}
	if err != nil {
		return nil, csvError(err)
	}

	// A repeated column name maps to its last occurrence
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &ParseError{Line: 1, Row: header, Err: fmt.Errorf("%w: %s", ErrMissingColumn, name)}
		}
	}
	statusIdx, hasStatus := columns[ColumnStatus]

	cell := func(record []string, idx int) string {
		if idx < len(record) {
			return record[idx]
		}
		return ""
	}

	rows := make([]entities.Row, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(err)
		}
		line, _ := reader.FieldPos(0)

		row := entities.Row{
			ID:           cell(record, columns[ColumnID]),
			Manufacturer: cell(record, columns[ColumnManufacturer]),
			Group:        cell(record, columns[ColumnGroup]),
			Reserved:     cell(record, columns[ColumnReserved]),
			Line:         line,
			Raw:          record,
		}
		if hasStatus {
			row.Status = cell(record, statusIdx)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// csvError turns a csv syntax error into a ParseError; anything else came from the reader.
func csvError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.StartLine, Err: csvErr.Err}
	}
	return fmt.Errorf("failed to read registry: %w", err)
}
