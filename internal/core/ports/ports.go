package ports

import (
	"context"
	"io"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

// Backend is the outbound contract to the doc-intelligence API. Every
// operation issues a single logical call and returns either a typed value or
// a normalized error; it never panics past this boundary.
type Backend interface {
	CheckStatus(ctx context.Context) (domain.StatusSnapshot, error)
	UploadDocument(ctx context.Context, filename string, body io.Reader) (domain.UploadResult, error)
	AskQuestion(ctx context.Context, question string) (domain.Answer, error)
	ExtractData(ctx context.Context) (domain.ExtractionResult, error)
	About(ctx context.Context) (domain.APIInfo, error)
}

// Notifier is the fire-and-forget side channel for user-visible messages.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// DocumentInspector reports local metadata about a candidate upload. The
// report is display-only and never gates the upload.
type DocumentInspector interface {
	Inspect(path string) domain.FileInfo
}

// ExtractionExporter writes an extraction result to a local file.
type ExtractionExporter interface {
	Export(result domain.ExtractionResult, path string) error
}
