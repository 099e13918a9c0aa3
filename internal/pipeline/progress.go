package pipeline

import "fmt"

// ProgressStatus is the state of one artifact.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// ProgressEvent reports artifact progress.
type ProgressEvent struct {
	Framework string
	Artifact  string
	Status    ProgressStatus
	Tier      Tier
	Message   string
}

// ProgressReporter buffers events on a channel.
type ProgressReporter struct {
	ch chan ProgressEvent
}

// NewProgressReporter creates a reporter with a buffer of 64 events.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{ch: make(chan ProgressEvent, 64)}
}

// Emit sends event without blocking; events are dropped when the buffer is
// full.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	select {
	case pr.ch <- event:
	default:
	}
}

// Subscribe returns the event channel.
func (pr *ProgressReporter) Subscribe() <-chan ProgressEvent {
	return pr.ch
}

// Close closes the event channel.
func (pr *ProgressReporter) Close() {
	close(pr.ch)
}

// FormatProgress renders an event as a status line.
func FormatProgress(event ProgressEvent) string {
	switch event.Status {
	case ProgressPending:
		return fmt.Sprintf("  ○ %s (pending)", event.Artifact)
	case ProgressWorking:
		return fmt.Sprintf("  ● %s...", event.Artifact)
	case ProgressComplete:
		if event.Tier != "" {
			return fmt.Sprintf("  ✓ %s (%s)", event.Artifact, event.Tier)
		}
		return fmt.Sprintf("  ✓ %s", event.Artifact)
	case ProgressFailed:
		return fmt.Sprintf("  ✗ %s failed: %s", event.Artifact, event.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", event.Artifact)
	}
}
