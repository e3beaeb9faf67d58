package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

func extractionOf(t *testing.T, pairs ...string) domain.ExtractionResult {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("pairs must be key/value")
	}
	var result domain.ExtractionResult
	for i := 0; i < len(pairs); i += 2 {
		value := pairs[i+1]
		result.Fields = append(result.Fields, domain.ExtractedField{Name: pairs[i], Value: &value})
	}
	return result
}

func TestExtractClosedGateIsNoOp(t *testing.T) {
	backend := &backendFake{}
	flow := NewExtractFlow(backend, &notifierFake{}, closedGate)

	if err := flow.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got := backend.extractCalls.Load(); got != 0 {
		t.Fatalf("expected zero network calls, got %d", got)
	}
}

func TestExtractSuccessStoresResult(t *testing.T) {
	backend := &backendFake{extraction: extractionOf(t, "shipment_id", "SH-1", "rate", "1200")}
	flow := NewExtractFlow(backend, &notifierFake{}, openGate)

	if err := flow.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if flow.State() != ExtractPopulated {
		t.Fatalf("expected populated state, got %q", flow.State())
	}
	if flow.Result() == nil || len(flow.Result().Fields) != 2 {
		t.Fatalf("unexpected result: %+v", flow.Result())
	}
}

func TestExtractClearsPreviousResultMidFlight(t *testing.T) {
	backend := &backendFake{extraction: extractionOf(t, "rate", "1200")}
	flow := NewExtractFlow(backend, &notifierFake{}, openGate)

	if err := flow.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	var midFlight *domain.ExtractionResult
	backend.onExtract = func() { midFlight = flow.Result() }
	if err := flow.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if midFlight != nil {
		t.Fatalf("expected no stale table mid-flight, got %+v", midFlight)
	}
}

func TestExtractFailureLeavesNoTable(t *testing.T) {
	backend := &backendFake{extraction: extractionOf(t, "rate", "1200")}
	notifier := &notifierFake{}
	flow := NewExtractFlow(backend, notifier, openGate)

	if err := flow.Extract(context.Background()); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	backend.extractErr = errors.New("boom")
	if err := flow.Extract(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if flow.State() != ExtractIdle {
		t.Fatalf("expected idle state, got %q", flow.State())
	}
	if flow.Result() != nil {
		t.Fatalf("expected no table rendered after failure")
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.errors))
	}
}
