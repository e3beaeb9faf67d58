package usecase

import (
	"context"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/core/ports"
)

// ExtractState tracks the structured-extraction exchange:
// Idle -> Extracting -> Populated, and Extracting -> Idle on failure.
type ExtractState string

const (
	ExtractIdle      ExtractState = "idle"
	ExtractRunning   ExtractState = "extracting"
	ExtractPopulated ExtractState = "populated"
)

// ExtractFlow owns a single in-flight structured-extraction exchange.
type ExtractFlow struct {
	backend  ports.Backend
	notifier ports.Notifier
	gate     func() bool

	state  ExtractState
	result *domain.ExtractionResult
}

func NewExtractFlow(backend ports.Backend, notifier ports.Notifier, gate func() bool) *ExtractFlow {
	return &ExtractFlow{
		backend:  backend,
		notifier: notifier,
		gate:     gate,
		state:    ExtractIdle,
	}
}

func (f *ExtractFlow) State() ExtractState              { return f.state }
func (f *ExtractFlow) Result() *domain.ExtractionResult { return f.result }

// Extract runs one extraction exchange. The previous result is cleared before
// the call resolves so no stale table is shown mid-flight; on failure nothing
// is rendered and the flow returns to Idle.
func (f *ExtractFlow) Extract(ctx context.Context) error {
	if f.gate != nil && !f.gate() {
		return nil
	}

	f.result = nil
	f.state = ExtractRunning

	result, err := f.backend.ExtractData(ctx)
	if err != nil {
		f.state = ExtractIdle
		f.notifier.Error("Extraction failed. Please try again.")
		return err
	}

	f.result = &result
	f.state = ExtractPopulated
	return nil
}
