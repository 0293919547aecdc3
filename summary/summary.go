// Package summary reports informational statistics over converted registry records.
// Nothing here rejects a record: the registry is taken as published.
package summary

import (
	"sort"

	"github.com/giygas/midi-sysex-ids/interfaces"
	"github.com/giygas/midi-sysex-ids/logging"
	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

// Compile-time check to ensure Reporter implements Summarizer
var _ interfaces.Summarizer = (*Reporter)(nil)

// Reporter implements the interfaces.Summarizer interface
type Reporter struct{}

// NewReporter creates a new summary reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report counts records by flag, id length, group and status
func (r *Reporter) Report(records []entities.ManufacturerID) *interfaces.ConversionSummary {
	s := &interfaces.ConversionSummary{
		Total:    len(records),
		Groups:   make(map[string]int),
		Statuses: make(map[string]int),
	}

	for _, rec := range records {
		if rec.Reserved {
			s.Reserved++
		}
		if rec.Status != "" {
			s.WithStatus++
			s.Statuses[rec.Status]++
		}

		switch len(rec.ID) {
		case 1:
			s.OneByteIDs++
		case 3:
			s.ThreeByteIDs++
		default:
			s.OtherLengthID++
		}

		s.Groups[rec.Group]++
	}

	return s
}

// Log writes the summary through the global logger
func Log(s *interfaces.ConversionSummary) {
	logging.Info("Registry summary",
		"total", s.Total,
		"reserved", s.Reserved,
		"with_status", s.WithStatus,
		"one_byte_ids", s.OneByteIDs,
		"three_byte_ids", s.ThreeByteIDs,
		"groups", len(s.Groups))

	if s.OtherLengthID > 0 {
		logging.Warn("Registry contains ids that are neither 1 nor 3 bytes long", "count", s.OtherLengthID)
	}

	for _, group := range SortedKeys(s.Groups) {
		logging.Debug("Registry group", "group", group, "count", s.Groups[group])
	}
	for _, status := range SortedKeys(s.Statuses) {
		logging.Debug("Registry status", "status", status, "count", s.Statuses[status])
	}
}

// SortedKeys returns the keys of counts in lexical order for stable output
func SortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
