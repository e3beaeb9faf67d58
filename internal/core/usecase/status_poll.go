package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/core/ports"
)

// PollerState is the liveness indicator state.
type PollerState string

const (
	PollerIdle     PollerState = "idle"
	PollerChecking PollerState = "checking"
	PollerOnline   PollerState = "online"
	PollerOffline  PollerState = "offline"
)

const defaultPollInterval = 30 * time.Second

// StatusPoller owns backend reachability and the current-document echo. It
// checks once eagerly on Start and then on a fixed interval; Poll runs an
// on-demand check. A tick that arrives while a check is outstanding is
// skipped, so shortening the interval below round-trip latency cannot stack
// concurrent checks.
type StatusPoller struct {
	backend  ports.Backend
	interval time.Duration

	mu       sync.Mutex
	inFlight bool
	state    PollerState
	snapshot domain.StatusSnapshot

	cancel context.CancelFunc
	done   chan struct{}
}

func NewStatusPoller(backend ports.Backend, interval time.Duration) *StatusPoller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &StatusPoller{
		backend:  backend,
		interval: interval,
		state:    PollerIdle,
	}
}

// Snapshot returns the last computed status. Safe for concurrent use with the
// polling goroutine.
func (p *StatusPoller) Snapshot() domain.StatusSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}

func (p *StatusPoller) State() PollerState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start launches the polling goroutine: one eager check, then one per
// interval until the context is cancelled or Stop is called.
func (p *StatusPoller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)
		p.Poll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Poll(ctx)
			}
		}
	}()
}

// Stop cancels the timer and waits for the polling goroutine, so no check
// fires against a torn-down owner.
func (p *StatusPoller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Poll runs a single status check and returns the resulting snapshot. On
// success the whole snapshot is overwritten; on failure only Online is reset
// to false while the document echo keeps its last-known value. Liveness
// failures are absorbed silently, never notified.
func (p *StatusPoller) Poll(ctx context.Context) domain.StatusSnapshot {
	p.mu.Lock()
	if p.inFlight {
		snap := p.snapshot
		p.mu.Unlock()
		return snap
	}
	p.inFlight = true
	p.state = PollerChecking
	p.mu.Unlock()

	snap, err := p.backend.CheckStatus(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight = false
	if err != nil {
		p.snapshot.Online = false
		p.state = PollerOffline
		slog.Debug("status_check_failed", "error", err)
		return p.snapshot
	}

	snap.Online = true
	p.snapshot = snap
	p.state = PollerOnline
	return p.snapshot
}
