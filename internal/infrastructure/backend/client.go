package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/infrastructure/resilience"
	"github.com/aeyjeyaryan/ultradoc/internal/observability/metrics"
)

type Config struct {
	Service           string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
}

// Client talks to the doc-intelligence HTTP API. Every failure of a
// user-initiated operation surfaces as the single domain.ErrBackend kind;
// finer-grained causes stay internal.
type Client struct {
	service    string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
	metrics    *metrics.BackendMetrics
}

// New builds the client. executor and m may be nil, which disables retries
// and instrumentation respectively.
func New(cfg Config, executor *resilience.Executor, m *metrics.BackendMetrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		service:    cfg.Service,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)*2),
		executor:   executor,
		metrics:    m,
	}
}

// CheckStatus runs a single attempt, no retry: a failed liveness check is
// itself the signal, and the next tick will try again anyway.
func (c *Client) CheckStatus(ctx context.Context) (domain.StatusSnapshot, error) {
	var raw struct {
		DocumentLoaded  *bool   `json:"document_loaded"`
		DocumentName    *string `json:"document_name"`
		CurrentDocument *string `json:"current_document"`
	}
	err := c.do(ctx, http.MethodGet, "/status", "", nil, &raw, "status")
	if c.metrics != nil {
		c.metrics.ObservePoll(c.service, err == nil)
	}
	if err != nil {
		return domain.StatusSnapshot{}, domain.WrapError(domain.ErrBackend, "check status", err)
	}

	snap := domain.StatusSnapshot{Online: true}
	if raw.DocumentLoaded != nil {
		snap.DocumentLoaded = *raw.DocumentLoaded
	}
	switch {
	case raw.DocumentName != nil:
		snap.DocumentName = *raw.DocumentName
	case raw.CurrentDocument != nil:
		// older backends echo the document under this key
		snap.DocumentName = *raw.CurrentDocument
	}
	return snap, nil
}

func (c *Client) UploadDocument(ctx context.Context, filename string, body io.Reader) (domain.UploadResult, error) {
	payload, contentType, err := multipartPayload(filename, body)
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("build upload payload: %w", err)
	}

	var result domain.UploadResult
	call := func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/upload", contentType, bytes.NewReader(payload), &result, "upload")
	}
	if err := c.execute(ctx, "backend.upload", call); err != nil {
		return domain.UploadResult{}, domain.WrapError(domain.ErrBackend, "upload document", err)
	}
	return result, nil
}

func (c *Client) AskQuestion(ctx context.Context, question string) (domain.Answer, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("marshal ask request: %w", err)
	}

	var raw struct {
		Answer     string          `json:"answer"`
		Confidence float64         `json:"confidence"`
		Sources    []domain.Source `json:"sources"`
		Metadata   map[string]any  `json:"metadata"`
	}
	call := func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/ask", "application/json", bytes.NewReader(payload), &raw, "ask")
	}
	if err := c.execute(ctx, "backend.ask", call); err != nil {
		return domain.Answer{}, domain.WrapError(domain.ErrBackend, "ask question", err)
	}

	answer := domain.Answer{
		Text:       raw.Answer,
		Confidence: raw.Confidence,
		Sources:    raw.Sources,
	}
	if guardrail, ok := raw.Metadata["guardrail"].(string); ok {
		answer.Guardrail = guardrail
	}
	return answer, nil
}

func (c *Client) ExtractData(ctx context.Context) (domain.ExtractionResult, error) {
	var result domain.ExtractionResult
	call := func(ctx context.Context) error {
		return c.do(ctx, http.MethodPost, "/extract", "", nil, &result, "extract")
	}
	if err := c.execute(ctx, "backend.extract", call); err != nil {
		return domain.ExtractionResult{}, domain.WrapError(domain.ErrBackend, "extract data", err)
	}
	return result, nil
}

func (c *Client) About(ctx context.Context) (domain.APIInfo, error) {
	var info domain.APIInfo
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &info, "about"); err != nil {
		return domain.APIInfo{}, domain.WrapError(domain.ErrBackend, "about", err)
	}
	return info, nil
}

func (c *Client) execute(ctx context.Context, operation string, call func(context.Context) error) error {
	if c.executor == nil {
		return call(ctx)
	}
	return c.executor.Execute(ctx, operation, call, classifyBackendError)
}

func multipartPayload(filename string, body io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, "", fmt.Errorf("copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}
