package console

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go-order-console/internal/backend"
	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

// ScanStatusClient is the slice of the backend client the monitor needs.
type ScanStatusClient interface {
	ScanStatus(ctx context.Context) (backend.ScanStatus, error)
	SetAutoScan(ctx context.Context, enabled bool) error
}

// ToggleOutcome tells the caller whether an optimistic auto-scan toggle stuck
// or was rolled back, so UI feedback is the caller's decision.
type ToggleOutcome int

const (
	ToggleApplied ToggleOutcome = iota
	ToggleRolledBack
)

// ScanMonitor reflects whether background scanning is auto-enabled and
// whether the backend is currently processing newly scanned mail. The raw
// processing flag is debounced before it becomes the visible indicator, so a
// transient blip never flickers the UI.
type ScanMonitor struct {
	client   ScanStatusClient
	toasts   *Notifier
	bus      event.Bus
	debounce time.Duration

	mu            sync.Mutex
	autoScan      bool
	processing    bool // raw, from backend
	indicator     bool // debounced
	debounceTimer *time.Timer
}

func NewScanMonitor(client ScanStatusClient, toasts *Notifier, bus event.Bus, debounce time.Duration) *ScanMonitor {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &ScanMonitor{client: client, toasts: toasts, bus: bus, debounce: debounce}
}

// Poll fetches the backend status once and applies the transition rules. Read
// failures are logged and retried on the next tick.
func (m *ScanMonitor) Poll(ctx context.Context) {
	status, err := m.client.ScanStatus(ctx)
	if err != nil {
		slog.Warn("scan status poll failed", "error", err)
		return
	}

	m.apply(status.AutoScan, status.IsProcessing)
}

// apply moves the monitor through the raw-status transitions.
func (m *ScanMonitor) apply(autoScan bool, processing bool) {
	m.mu.Lock()
	m.autoScan = autoScan

	wasProcessing := m.processing
	m.processing = processing

	switch {
	case processing && !wasProcessing && m.debounceTimer == nil && !m.indicator:
		// Hold the indicator back until the state has stayed up long enough.
		m.debounceTimer = time.AfterFunc(m.debounce, m.debounceFired)
		m.mu.Unlock()

	case !processing:
		if m.debounceTimer != nil {
			m.debounceTimer.Stop()
			m.debounceTimer = nil
		}
		completed := m.indicator
		m.indicator = false
		m.mu.Unlock()

		if completed {
			// A processing cycle the operator did not initiate just finished.
			m.toasts.Show(model.ToastSuccess, "Mail data updated successfully!")
			event.Emit(m.bus, event.TypeScanCompleted, nil)
		}

	default:
		m.mu.Unlock()
	}
}

func (m *ScanMonitor) debounceFired() {
	m.mu.Lock()
	m.debounceTimer = nil
	show := m.processing && !m.indicator
	if show {
		m.indicator = true
	}
	m.mu.Unlock()

	if show {
		event.Emit(m.bus, event.TypeScanProcessing, nil)
	}
}

// ToggleAutoScan optimistically flips the local flag, issues the backend
// update, and rolls back on failure. A stale rollback racing a second rapid
// toggle is a known, accepted edge case.
func (m *ScanMonitor) ToggleAutoScan(ctx context.Context, enabled bool) (ToggleOutcome, error) {
	m.mu.Lock()
	previous := m.autoScan
	m.autoScan = enabled
	m.mu.Unlock()

	if err := m.client.SetAutoScan(ctx, enabled); err != nil {
		m.mu.Lock()
		m.autoScan = previous
		m.mu.Unlock()
		return ToggleRolledBack, err
	}

	event.Emit(m.bus, event.TypeAutoScanToggled, map[string]bool{"enabled": enabled})
	return ToggleApplied, nil
}

// Snapshot returns the current monitor state for the shell.
func (m *ScanMonitor) Snapshot() (autoScan bool, processing bool, indicator bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoScan, m.processing, m.indicator
}

// AutoScanEnabled reports the local (possibly optimistic) flag.
func (m *ScanMonitor) AutoScanEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.autoScan
}

// Close cancels a pending debounce timer. Used on teardown.
func (m *ScanMonitor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.debounceTimer != nil {
		m.debounceTimer.Stop()
		m.debounceTimer = nil
	}
}
