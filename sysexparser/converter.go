package sysexparser

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

// ParseID splits a registry id such as "00.21.1D" on dots and decodes every token as base 16.
func ParseID(raw string) ([]int, error) {
	tokens := strings.Split(raw, ".")
	id := make([]int, 0, len(tokens))

	for _, token := range tokens {
		// ParseUint with an explicit base refuses signs, underscores and the 0x prefix
		value, err := strconv.ParseUint(strings.TrimSpace(token), 16, strconv.IntSize-1)
		if err != nil {
			return nil, &ParseError{Token: token, Err: fmt.Errorf("%w %q in id %q", ErrInvalidToken, token, raw)}
		}
		id = append(id, int(value))
	}

	return id, nil
}

// ConvertRow maps one registry row onto its output record.
func ConvertRow(row entities.Row) (entities.ManufacturerID, error) {
	id, err := ParseID(row.ID)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Line = row.Line
			parseErr.Row = row.Raw
		}
		return entities.ManufacturerID{}, err
	}

	record := entities.ManufacturerID{
		ID:           id,
		Manufacturer: row.Manufacturer,
		Group:        row.Group,
		Reserved:     row.Reserved != "",
	}
	if row.Status != "" {
		record.Status = row.Status
	}

	return record, nil
}

// ConvertRows converts every row in order. The first bad row aborts the whole conversion.
func ConvertRows(ctx context.Context, rows []entities.Row) ([]entities.ManufacturerID, error) {
	records := make([]entities.ManufacturerID, 0, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := ConvertRow(row)
		if err != nil {
			logging.Error("Failed to convert registry row",
				"line", row.Line,
				"row", row.Raw,
				"error", err)
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
