package console

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-console/internal/backend"
	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

type fakeScanClient struct {
	status    backend.ScanStatus
	statusErr error
	setErr    error
	setCalls  []bool
}

func (f *fakeScanClient) ScanStatus(_ context.Context) (backend.ScanStatus, error) {
	return f.status, f.statusErr
}

func (f *fakeScanClient) SetAutoScan(_ context.Context, enabled bool) error {
	f.setCalls = append(f.setCalls, enabled)
	return f.setErr
}

func newTestMonitor(t *testing.T, debounce time.Duration) (*ScanMonitor, *fakeScanClient, *Notifier) {
	t.Helper()

	client := &fakeScanClient{}
	bus := event.NewBus()
	toasts := NewNotifier(time.Minute, bus)
	monitor := NewScanMonitor(client, toasts, bus, debounce)

	t.Cleanup(func() {
		monitor.Close()
		toasts.Close()
	})
	return monitor, client, toasts
}

func TestScanMonitor_DebouncedIndicator(t *testing.T) {
	monitor, _, _ := newTestMonitor(t, 20*time.Millisecond)

	monitor.apply(true, true)

	// The raw flag is up but the indicator waits out the debounce window.
	_, processing, indicator := monitor.Snapshot()
	assert.True(t, processing)
	assert.False(t, indicator)

	assert.Eventually(t, func() bool {
		_, _, indicator := monitor.Snapshot()
		return indicator
	}, time.Second, 5*time.Millisecond)
}

func TestScanMonitor_BlipNeverShowsIndicator(t *testing.T) {
	monitor, _, toasts := newTestMonitor(t, 30*time.Millisecond)

	monitor.apply(true, true)
	monitor.apply(true, false)

	// Wait past the debounce window; the cancelled timer must not fire.
	time.Sleep(50 * time.Millisecond)

	_, processing, indicator := monitor.Snapshot()
	assert.False(t, processing)
	assert.False(t, indicator)
	assert.Nil(t, toasts.Current())
}

func TestScanMonitor_CompletionToast(t *testing.T) {
	monitor, _, toasts := newTestMonitor(t, 5*time.Millisecond)

	monitor.apply(true, true)
	require.Eventually(t, func() bool {
		_, _, indicator := monitor.Snapshot()
		return indicator
	}, time.Second, time.Millisecond)

	monitor.apply(true, false)

	_, _, indicator := monitor.Snapshot()
	assert.False(t, indicator)

	toast := toasts.Current()
	require.NotNil(t, toast)
	assert.Equal(t, model.ToastSuccess, toast.Kind)
	assert.Equal(t, "Mail data updated successfully!", toast.Text)
}

func TestScanMonitor_FallWithoutIndicatorIsSilent(t *testing.T) {
	monitor, _, toasts := newTestMonitor(t, time.Minute)

	monitor.apply(true, true)
	monitor.apply(true, false)

	assert.Nil(t, toasts.Current())
}

func TestScanMonitor_ToggleAutoScan(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		monitor, client, _ := newTestMonitor(t, time.Minute)

		outcome, err := monitor.ToggleAutoScan(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, ToggleApplied, outcome)
		assert.True(t, monitor.AutoScanEnabled())
		assert.Equal(t, []bool{true}, client.setCalls)
	})

	t.Run("rolled back on backend failure", func(t *testing.T) {
		monitor, client, _ := newTestMonitor(t, time.Minute)
		monitor.apply(true, false)
		client.setErr = errors.New("backend down")

		outcome, err := monitor.ToggleAutoScan(context.Background(), false)
		require.Error(t, err)
		assert.Equal(t, ToggleRolledBack, outcome)

		// The optimistic flip reverted to the pre-toggle value.
		assert.True(t, monitor.AutoScanEnabled())
	})
}

func TestScanMonitor_PollFailureKeepsState(t *testing.T) {
	monitor, client, _ := newTestMonitor(t, time.Minute)

	client.status = backend.ScanStatus{AutoScan: true, IsProcessing: false}
	monitor.Poll(context.Background())
	assert.True(t, monitor.AutoScanEnabled())

	client.statusErr = errors.New("timeout")
	client.status = backend.ScanStatus{AutoScan: false}
	monitor.Poll(context.Background())

	// A failed poll leaves the last good state in place.
	assert.True(t, monitor.AutoScanEnabled())
}
