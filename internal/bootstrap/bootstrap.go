package bootstrap

import (
	"io"

	"github.com/aeyjeyaryan/ultradoc/internal/adapters/console"
	"github.com/aeyjeyaryan/ultradoc/internal/config"
	"github.com/aeyjeyaryan/ultradoc/internal/core/usecase"
	"github.com/aeyjeyaryan/ultradoc/internal/infrastructure/backend"
	"github.com/aeyjeyaryan/ultradoc/internal/infrastructure/export"
	"github.com/aeyjeyaryan/ultradoc/internal/infrastructure/inspect"
	"github.com/aeyjeyaryan/ultradoc/internal/infrastructure/resilience"
	"github.com/aeyjeyaryan/ultradoc/internal/observability/metrics"
)

const serviceName = "ultradoc"

type App struct {
	Config  config.Config
	Metrics *metrics.BackendMetrics
	Backend *backend.Client
	Poller  *usecase.StatusPoller
	Shell   *console.Shell
}

// New wires the full object graph: metrics registry, resilience executor,
// backend gateway, status poller and the interactive shell.
func New(cfg config.Config, in io.Reader, out io.Writer) *App {
	m := metrics.NewBackendMetrics(serviceName)

	execCfg := resilience.DefaultConfig()
	execCfg.MaxAttempts = cfg.RetryMaxAttempts
	executor := resilience.NewExecutor(execCfg)

	client := backend.New(backend.Config{
		Service:           serviceName,
		BaseURL:           cfg.BackendURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, executor, m)

	poller := usecase.NewStatusPoller(client, cfg.PollInterval)

	shell := console.NewShell(console.Options{
		In:         in,
		Out:        out,
		Backend:    client,
		Notifier:   console.NewNotifier(out),
		Inspector:  inspect.New(),
		Exporter:   export.NewXLSX(),
		Poller:     poller,
		ExportPath: cfg.ExportPath,
	})

	return &App{
		Config:  cfg,
		Metrics: m,
		Backend: client,
		Poller:  poller,
		Shell:   shell,
	}
}
