package interfaces

import (
	"context"
	"errors"
	"testing"

	"github.com/giygas/midi-sysex-ids/sysexparser/entities"
)

// MockConverter implements Converter interface for testing
type MockConverter struct {
	records    []entities.ManufacturerID
	shouldFail bool
	calls      int
}

func (m *MockConverter) Convert(ctx context.Context, input, output string) (*ConversionResult, error) {
	m.calls++
	if m.shouldFail {
		return nil, errors.New("mock conversion error")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ConversionResult{
		Input:   input,
		Output:  output,
		Records: m.records,
		Size:    2,
		Written: true,
	}, nil
}

// MockSummarizer implements Summarizer interface for testing
type MockSummarizer struct{}

func (m *MockSummarizer) Report(records []entities.ManufacturerID) *ConversionSummary {
	return &ConversionSummary{Total: len(records)}
}

// MockRegistry implements Registry interface for testing
type MockRegistry struct {
	records []entities.ManufacturerID
}

func (m *MockRegistry) Lookup(msg []byte) (entities.ManufacturerID, error) {
	for _, rec := range m.records {
		if len(msg) > 0 && len(rec.ID) == 1 && rec.ID[0] == int(msg[0]) {
			return rec, nil
		}
	}
	return entities.ManufacturerID{}, errors.New("not found")
}

func (m *MockRegistry) Records() []entities.ManufacturerID {
	return m.records
}

func (m *MockRegistry) Len() int {
	return len(m.records)
}

func testRecords() []entities.ManufacturerID {
	return []entities.ManufacturerID{
		{ID: []int{0x41}, Manufacturer: "Roland Corporation", Group: "Japanese Group"},
		{ID: []int{0x43}, Manufacturer: "Yamaha", Group: "Japanese Group"},
	}
}

func TestConverterInterface(t *testing.T) {
	converter := &MockConverter{records: testRecords()}

	result, err := converter.Convert(context.Background(), "midi_sysex_ids.csv", "ids.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !result.Written || len(result.Records) != 2 {
		t.Errorf("Unexpected result: %+v", result)
	}
	if result.Input != "midi_sysex_ids.csv" || result.Output != "ids.json" {
		t.Errorf("Paths not carried through: %+v", result)
	}

	// Test failure
	converter = &MockConverter{shouldFail: true}
	if _, err := converter.Convert(context.Background(), "in", "out"); err == nil {
		t.Error("Expected conversion error but got none")
	}

	// Test cancellation
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	converter = &MockConverter{}
	if _, err := converter.Convert(ctx, "in", "out"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRegistryInterface(t *testing.T) {
	var registry Registry = &MockRegistry{records: testRecords()}

	if registry.Len() != 2 {
		t.Errorf("Expected 2 records, got %d", registry.Len())
	}

	rec, err := registry.Lookup([]byte{0x43})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rec.Manufacturer != "Yamaha" {
		t.Errorf("Expected Yamaha, got %s", rec.Manufacturer)
	}

	if _, err := registry.Lookup([]byte{0x7E}); err == nil {
		t.Error("Expected lookup error but got none")
	}
}

// Example of how interfaces enable dependency injection
type Pipeline struct {
	converter  Converter
	summarizer Summarizer
}

func (p *Pipeline) Run(ctx context.Context) (*ConversionSummary, error) {
	result, err := p.converter.Convert(ctx, "midi_sysex_ids.csv", "ids.json")
	if err != nil {
		return nil, err
	}
	return p.summarizer.Report(result.Records), nil
}

func TestPipelineWithDependencyInjection(t *testing.T) {
	converter := &MockConverter{records: testRecords()}
	pipeline := &Pipeline{converter: converter, summarizer: &MockSummarizer{}}

	summary, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("Expected 2 records in summary, got %d", summary.Total)
	}
	if converter.calls != 1 {
		t.Errorf("Expected converter to be called once, got %d", converter.calls)
	}
}

// Compile-time checks to ensure our implementations implement the interfaces
func TestCompileTimeChecks(t *testing.T) {
	// These will fail to compile if the implementations don't match the interfaces
	var _ Converter = (*MockConverter)(nil)
	var _ Summarizer = (*MockSummarizer)(nil)
	var _ Registry = (*MockRegistry)(nil)
}
