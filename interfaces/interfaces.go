// Package interfaces defines the core abstractions of the sysex id tooling
// so that the CLI can be tested against fakes.
package interfaces

import (
	"context"
	"time"

	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

// ConversionSummary gives an overview of a converted registry.
type ConversionSummary struct {
	Total         int
	Reserved      int
	WithStatus    int
	OneByteIDs    int
	ThreeByteIDs  int
	OtherLengthID int // ids that are neither 1 nor 3 bytes long
	Groups        map[string]int
	Statuses      map[string]int
}

// ConversionResult is what a successful conversion produced.
type ConversionResult struct {
	Input    string
	Output   string
	Records  []entities.ManufacturerID
	Size     int // encoded JSON size in bytes
	Written  bool
	Duration time.Duration
}

// Converter defines the contract for turning the registry CSV into ids.json.
type Converter interface {
	// Convert reads input and replaces output. Nothing is written when any row fails.
	Convert(ctx context.Context, input, output string) (*ConversionResult, error)
}

// Summarizer builds informational statistics over converted records.
type Summarizer interface {
	Report(records []entities.ManufacturerID) *ConversionSummary
}

// Registry resolves SysEx manufacturer ids.
type Registry interface {
	// Lookup returns the manufacturer owning the id at the start of a SysEx message
	Lookup(msg []byte) (entities.ManufacturerID, error)
	Records() []entities.ManufacturerID
	Len() int
}
