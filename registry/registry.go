// Package registry loads a generated ids.json and resolves the manufacturer
// of a MIDI System Exclusive message.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/giygas/midi-sysex-ids/interfaces"
	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/sysexparser"
	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

const (
	// StartOfExclusive opens every SysEx message
	StartOfExclusive byte = 0xF0

	// extendedIDPrefix marks a three byte manufacturer id
	extendedIDPrefix byte = 0x00
)

var (
	ErrMessageTooShort     = errors.New("message too short for a manufacturer id")
	ErrInvalidDataByte     = errors.New("manufacturer id byte is not a 7-bit data byte")
	ErrUnknownManufacturer = errors.New("unknown manufacturer id")
)

// Compile-time check to ensure Registry implements interfaces.Registry
var _ interfaces.Registry = (*Registry)(nil)

// Registry indexes manufacturer records by their id
type Registry struct {
	records []entities.ManufacturerID
	byKey   map[string]int // id key -> index in records
}

// New builds a registry over records. When an id appears more than once the
// first record wins; the records themselves are kept as given.
func New(records []entities.ManufacturerID) *Registry {
	r := &Registry{
		records: records,
		byKey:   make(map[string]int, len(records)),
	}

	for i, rec := range records {
		key := rec.Key()
		if _, exists := r.byKey[key]; exists {
			logging.Debug("Duplicate manufacturer id, keeping first", "id", key, "manufacturer", rec.Manufacturer)
			continue
		}
		r.byKey[key] = i
	}

	return r
}

// Load reads an ids.json file
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []entities.ManufacturerID
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	logging.Debug("Registry loaded", "path", path, "records_count", len(records))
	return New(records), nil
}

// Records returns the records in file order
func (r *Registry) Records() []entities.ManufacturerID {
	return r.records
}

// Len returns the number of records
func (r *Registry) Len() int {
	return len(r.records)
}

// Get returns the record registered under id
func (r *Registry) Get(id []int) (entities.ManufacturerID, bool) {
	idx, ok := r.byKey[entities.IDKey(id)]
	if !ok {
		return entities.ManufacturerID{}, false
	}
	return r.records[idx], true
}

// Lookup resolves the manufacturer of msg. A leading F0 is optional.
func (r *Registry) Lookup(msg []byte) (entities.ManufacturerID, error) {
	id, err := ManufacturerIDBytes(msg)
	if err != nil {
		return entities.ManufacturerID{}, err
	}

	rec, ok := r.Get(id)
	if !ok {
		return entities.ManufacturerID{}, fmt.Errorf("%w: %s", ErrUnknownManufacturer, entities.IDKey(id))
	}
	return rec, nil
}

// ManufacturerIDBytes extracts the one or three byte manufacturer id from the start of msg.
func ManufacturerIDBytes(msg []byte) ([]int, error) {
	if len(msg) > 0 && msg[0] == StartOfExclusive {
		msg = msg[1:]
	}
	if len(msg) == 0 {
		return nil, ErrMessageTooShort
	}

	n := 1
	if msg[0] == extendedIDPrefix {
		n = 3
	}
	if len(msg) < n {
		return nil, ErrMessageTooShort
	}

	id := make([]int, n)
	for i, b := range msg[:n] {
		if b > 0x7F {
			return nil, fmt.Errorf("%w: %02X", ErrInvalidDataByte, b)
		}
		id[i] = int(b)
	}
	return id, nil
}

// ParseMessage reads hex bytes written either space separated ("F0 00 21 1D")
// or in registry notation ("00.21.1D"), or any mix of both.
func ParseMessage(args []string) ([]byte, error) {
	fields := strings.Fields(strings.ReplaceAll(strings.Join(args, " "), ".", " "))
	if len(fields) == 0 {
		return nil, ErrMessageTooShort
	}

	values, err := sysexparser.ParseID(strings.Join(fields, "."))
	if err != nil {
		return nil, err
	}

	msg := make([]byte, len(values))
	for i, v := range values {
		if v > 0xFF {
			return nil, fmt.Errorf("value %X at position %d does not fit in a byte", v, i)
		}
		msg[i] = byte(v)
	}
	return msg, nil
}
