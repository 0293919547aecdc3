// Package sysexparser converts the MIDI SysEx manufacturer registry CSV into ids.json.
package sysexparser

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/giygas/midi-sysex-ids/interfaces"
	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/metrics"
	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

// Compile-time check to ensure SysexParser implements Converter interface
var _ interfaces.Converter = (*SysexParser)(nil)

// SysexParser implements the Converter interface
type SysexParser struct {
	// DryRun converts and encodes without touching the output file
	DryRun bool
}

// NewSysexParser creates a new SysexParser instance
func NewSysexParser() *SysexParser {
	return &SysexParser{}
}

// Convert implements the Converter interface
func (p *SysexParser) Convert(ctx context.Context, input, output string) (*interfaces.ConversionResult, error) {
	start := time.Now()

	result, err := p.convert(ctx, input, output)
	if err != nil {
		metrics.ObserveFailure(ErrorKind(err), time.Since(start))
		return nil, err
	}

	result.Duration = time.Since(start)
	metrics.ObserveSuccess(len(result.Records), result.Size, result.Duration)

	logging.Info("Registry conversion completed",
		"input", input,
		"output", output,
		"records_count", len(result.Records),
		"size", humanize.Bytes(uint64(result.Size)),
		"written", result.Written,
		"duration", result.Duration.String())

	return result, nil
}

func (p *SysexParser) convert(ctx context.Context, input, output string) (*interfaces.ConversionResult, error) {
	rows, err := readRegistry(input)
	if err != nil {
		return nil, err
	}
	logging.Debug("Registry rows read", "input", input, "rows", len(rows))

	records, err := ConvertRows(ctx, rows)
	if err != nil {
		return nil, err
	}

	data, err := EncodeJSON(records)
	if err != nil {
		return nil, err
	}

	// Last chance to abort before the destination is replaced
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &interfaces.ConversionResult{
		Input:   input,
		Output:  output,
		Records: records,
		Size:    len(data),
	}

	if p.DryRun {
		logging.Info("Dry run, output left untouched", "output", output)
		return result, nil
	}

	if err := WriteFileAtomic(output, data); err != nil {
		return nil, err
	}
	result.Written = true

	return result, nil
}

func readRegistry(path string) ([]entities.Row, error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return nil, newIOError("open", path, err)
	}
	defer func() {
		if err := csvFile.Close(); err != nil {
			logging.Warn("Failed to close registry CSV file", "error", err)
		}
	}()

	rows, err := ReadRows(csvFile)
	if err != nil {
		if errors.Is(err, ErrParse) {
			logging.Error("Failed to parse registry CSV", "input", path, "error", err)
			return nil, err
		}
		return nil, newIOError("read", path, err)
	}

	return rows, nil
}
