package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/internal/progress"
)

// blockingBroadcaster holds the campaign open until released.
type blockingBroadcaster struct {
	release chan struct{}
	result  *domain.BroadcastResult
	err     error
}

func (b *blockingBroadcaster) BroadcastAll(ctx context.Context, tpl string, catalog *domain.Catalog) (*domain.BroadcastResult, error) {
	if b.release != nil {
		<-b.release
	}
	return b.result, b.err
}

type staticProgress struct{}

func (staticProgress) Snapshot() progress.Snapshot { return progress.Snapshot{CompletedListings: 4} }

func TestRunnerRejectsOverlappingCampaigns(t *testing.T) {
	b := &blockingBroadcaster{release: make(chan struct{}), result: &domain.BroadcastResult{}}
	r := NewCampaignRunner(b, staticProgress{})

	if err := r.Start(context.Background(), "hi"); err != nil {
		t.Fatalf("first start: %v", err)
	}
	if err := r.Start(context.Background(), "hi"); err == nil {
		t.Errorf("second start must be rejected while the first runs")
	}
	if !r.IsRunning() {
		t.Errorf("runner should report running")
	}

	close(b.release)
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if r.IsRunning() {
		t.Errorf("runner should be idle after the campaign finishes")
	}

	// A new campaign can start once the previous one is done.
	b.release = nil
	if err := r.Start(context.Background(), "hi"); err != nil {
		t.Errorf("restart after completion: %v", err)
	}
	_ = r.Wait(context.Background())
}

func TestRunnerStatusCarriesResultAndProgress(t *testing.T) {
	b := &blockingBroadcaster{
		result: &domain.BroadcastResult{MessagesSent: 9},
		err:    errors.New("partial failure"),
	}
	r := NewCampaignRunner(b, staticProgress{})

	if err := r.Start(context.Background(), "hi"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := r.Wait(context.Background()); err != nil {
		t.Fatalf("wait: %v", err)
	}

	status := r.Status()
	if status.Running {
		t.Errorf("status should be idle")
	}
	if status.RunsCount != 1 {
		t.Errorf("expected 1 run, got %d", status.RunsCount)
	}
	if status.LastResult == nil || status.LastResult.MessagesSent != 9 {
		t.Errorf("last result missing: %+v", status.LastResult)
	}
	if status.LastError != "partial failure" {
		t.Errorf("last error missing: %q", status.LastError)
	}
	if status.Progress.CompletedListings != 4 {
		t.Errorf("progress snapshot missing: %+v", status.Progress)
	}
}

func TestRunnerWaitHonorsContext(t *testing.T) {
	b := &blockingBroadcaster{release: make(chan struct{}), result: &domain.BroadcastResult{}}
	r := NewCampaignRunner(b, staticProgress{})

	if err := r.Start(context.Background(), "hi"); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := r.Wait(ctx); err == nil {
		t.Errorf("wait must return when the context expires")
	}

	close(b.release)
	_ = r.Wait(context.Background())
}