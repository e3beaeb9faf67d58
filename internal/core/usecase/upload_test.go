package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

func TestUploadRejectsDisallowedExtensionLocally(t *testing.T) {
	backend := &backendFake{}
	notifier := &notifierFake{}
	flow := NewUploadFlow(backend, notifier, nil)

	err := flow.Upload(context.Background(), "report.exe", strings.NewReader("MZ"))
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := backend.uploadCalls.Load(); got != 0 {
		t.Fatalf("expected zero network calls, got %d", got)
	}
	if flow.State() != UploadFailed {
		t.Fatalf("expected failed state, got %q", flow.State())
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one validation notification, got %d", len(notifier.errors))
	}
}

func TestUploadExtensionCheckIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"report.PDF", "notes.Txt", "contract.DOCX"} {
		if err := ValidateFilename(name); err != nil {
			t.Fatalf("ValidateFilename(%q) = %v", name, err)
		}
	}
	if err := ValidateFilename("legacy.doc"); err == nil {
		t.Fatalf("expected .doc to be rejected")
	}
}

func TestUploadSuccessPublishesDocumentState(t *testing.T) {
	backend := &backendFake{
		upload: domain.UploadResult{Filename: "report.pdf", ChunksCreated: 12, TotalCharacters: 5400},
	}
	notifier := &notifierFake{}
	var published domain.DocumentState
	flow := NewUploadFlow(backend, notifier, func(state domain.DocumentState) {
		published = state
	})

	if err := flow.Upload(context.Background(), "report.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if !published.Loaded || published.Name != "report.pdf" {
		t.Fatalf("expected document state {true report.pdf}, got %+v", published)
	}
	if flow.State() != UploadSucceeded {
		t.Fatalf("expected succeeded state, got %q", flow.State())
	}
	result := flow.Result()
	if result == nil || result.ChunksCreated != 12 || result.TotalCharacters != 5400 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if backend.lastFilename != "report.pdf" {
		t.Fatalf("expected filename forwarded, got %q", backend.lastFilename)
	}
	if len(notifier.successes) != 1 {
		t.Fatalf("expected one success notification, got %d", len(notifier.successes))
	}
}

func TestUploadFailureNotifiesAndKeepsPreviousResult(t *testing.T) {
	backend := &backendFake{
		upload: domain.UploadResult{Filename: "first.pdf", ChunksCreated: 3, TotalCharacters: 900},
	}
	notifier := &notifierFake{}
	flow := NewUploadFlow(backend, notifier, nil)

	if err := flow.Upload(context.Background(), "first.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	backend.uploadErr = errors.New("boom")
	if err := flow.Upload(context.Background(), "second.pdf", strings.NewReader("%PDF")); err == nil {
		t.Fatalf("expected upload error")
	}
	if flow.State() != UploadFailed {
		t.Fatalf("expected failed state, got %q", flow.State())
	}
	if flow.Result() == nil || flow.Result().Filename != "first.pdf" {
		t.Fatalf("expected previous result retained, got %+v", flow.Result())
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("expected one failure notification, got %d", len(notifier.errors))
	}
}

func TestUploadLaterSuccessSupersedesResult(t *testing.T) {
	backend := &backendFake{
		upload: domain.UploadResult{Filename: "a.pdf", ChunksCreated: 1, TotalCharacters: 10},
	}
	flow := NewUploadFlow(backend, &notifierFake{}, nil)

	if err := flow.Upload(context.Background(), "a.pdf", strings.NewReader("%PDF")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	backend.upload = domain.UploadResult{Filename: "b.txt", ChunksCreated: 2, TotalCharacters: 20}
	if err := flow.Upload(context.Background(), "b.txt", strings.NewReader("text")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if flow.Result().Filename != "b.txt" {
		t.Fatalf("expected latest result, got %+v", flow.Result())
	}
}
