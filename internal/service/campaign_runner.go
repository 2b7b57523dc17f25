package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/internal/progress"
	"github.com/mhuescar/hostify-broadcast-message/pkg/logger"
)

// campaignBroadcaster is what the runner needs from the orchestrator;
// kept minimal so tests can drive the runner with a fake.
type campaignBroadcaster interface {
	BroadcastAll(ctx context.Context, tpl string, catalog *domain.Catalog) (*domain.BroadcastResult, error)
}

type progressReader interface {
	Snapshot() progress.Snapshot
}

// CampaignRunner owns the lifecycle of the full-catalog campaign: it runs
// BroadcastAll on a single background goroutine so the HTTP layer can
// launch a multi-hour run and poll it. Overlapping campaigns are
// rejected, preserving the single-writer guarantee on the progress store.
type CampaignRunner struct {
	service  campaignBroadcaster
	progress progressReader

	mu         sync.RWMutex
	running    bool
	startedAt  time.Time
	doneChan   chan struct{}
	lastResult *domain.BroadcastResult
	lastError  string
	runsCount  int64
}

// CampaignStatus is the runner state exposed by the status endpoint.
type CampaignStatus struct {
	Running    bool                    `json:"running"`
	StartedAt  time.Time               `json:"startedAt,omitempty"`
	RunsCount  int64                   `json:"runsCount"`
	LastResult *domain.BroadcastResult `json:"lastResult,omitempty"`
	LastError  string                  `json:"lastError,omitempty"`
	Progress   progress.Snapshot       `json:"progress"`
}

func NewCampaignRunner(svc campaignBroadcaster, progressStore progressReader) *CampaignRunner {
	return &CampaignRunner{
		service:  svc,
		progress: progressStore,
	}
}

// Start launches a campaign in the background. Returns an error when one
// is already running.
func (r *CampaignRunner) Start(ctx context.Context, tpl string) error {
	r.mu.Lock()

	if r.running {
		r.mu.Unlock()
		return fmt.Errorf("a campaign is already running")
	}

	r.running = true
	r.startedAt = time.Now()
	r.runsCount++
	r.doneChan = make(chan struct{})
	r.mu.Unlock()

	logger.Infof("Launching full-catalog campaign")

	go r.run(ctx, tpl)

	return nil
}

func (r *CampaignRunner) run(ctx context.Context, tpl string) {
	result, err := r.service.BroadcastAll(ctx, tpl, nil)

	r.mu.Lock()
	r.running = false
	r.lastResult = result
	if err != nil {
		r.lastError = err.Error()
		logger.Errorf("Campaign finished with error: %v", err)
	} else {
		r.lastError = ""
	}
	close(r.doneChan)
	r.mu.Unlock()
}

func (r *CampaignRunner) IsRunning() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.running
}

// Wait blocks until the current campaign finishes or the context is done.
// No-op when nothing is running.
func (r *CampaignRunner) Wait(ctx context.Context) error {
	r.mu.RLock()
	done := r.doneChan
	running := r.running
	r.mu.RUnlock()

	if !running || done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *CampaignRunner) Status() CampaignStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	status := CampaignStatus{
		Running:    r.running,
		RunsCount:  r.runsCount,
		LastResult: r.lastResult,
		LastError:  r.lastError,
		Progress:   r.progress.Snapshot(),
	}
	if r.running {
		status.StartedAt = r.startedAt
	}

	return status
}
