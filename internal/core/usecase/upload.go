package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/core/ports"
)

// UploadState tracks the single upload exchange:
// Idle -> Uploading -> {Succeeded, Failed}, back to Idle on the next action.
type UploadState string

const (
	UploadIdle      UploadState = "idle"
	UploadRunning   UploadState = "uploading"
	UploadSucceeded UploadState = "succeeded"
	UploadFailed    UploadState = "failed"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
}

// UploadFlow owns the "document is present" transition: it validates a
// candidate file locally, submits it, and on success publishes the new
// current-document identity to its subscriber.
type UploadFlow struct {
	backend  ports.Backend
	notifier ports.Notifier
	onLoaded func(domain.DocumentState)

	state  UploadState
	result *domain.UploadResult
}

func NewUploadFlow(backend ports.Backend, notifier ports.Notifier, onLoaded func(domain.DocumentState)) *UploadFlow {
	return &UploadFlow{
		backend:  backend,
		notifier: notifier,
		onLoaded: onLoaded,
		state:    UploadIdle,
	}
}

func (f *UploadFlow) State() UploadState { return f.state }

// Result returns the latest successful upload, if any. A later success
// silently supersedes it; a failure leaves it untouched.
func (f *UploadFlow) Result() *domain.UploadResult { return f.result }

// ValidateFilename enforces the upload extension allow-set. It runs before
// any network call; a violation is a client-local validation failure.
func ValidateFilename(filename string) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return domain.WrapError(domain.ErrValidation, "upload",
			fmt.Errorf("unsupported file type %q, allowed: .pdf, .docx, .txt", ext))
	}
	return nil
}

// Upload runs one upload exchange. No retry is automatic; the user may always
// try again.
func (f *UploadFlow) Upload(ctx context.Context, filename string, body io.Reader) error {
	if err := ValidateFilename(filename); err != nil {
		f.state = UploadFailed
		f.notifier.Error(fmt.Sprintf("Unsupported file type %q. Allowed: .pdf, .docx, .txt", filepath.Ext(filename)))
		return err
	}

	f.state = UploadRunning
	result, err := f.backend.UploadDocument(ctx, filename, body)
	if err != nil {
		f.state = UploadFailed
		f.notifier.Error("Upload failed. Check that the backend is reachable and try again.")
		return err
	}

	f.state = UploadSucceeded
	f.result = &result
	if f.onLoaded != nil {
		f.onLoaded(domain.DocumentState{Loaded: true, Name: result.Filename})
	}
	f.notifier.Success(fmt.Sprintf("Uploaded %s", result.Filename))
	return nil
}
