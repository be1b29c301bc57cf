package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

func TestNotifier_SingleSlot(t *testing.T) {
	n := NewNotifier(time.Minute, event.NewBus())
	defer n.Close()

	first := n.Show(model.ToastInfo, "first")
	second := n.Show(model.ToastSuccess, "second")

	current := n.Current()
	require.NotNil(t, current)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, "second", current.Text)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestNotifier_AutoDismiss(t *testing.T) {
	n := NewNotifier(20*time.Millisecond, event.NewBus())
	defer n.Close()

	n.Show(model.ToastDeleted, "gone soon")
	require.NotNil(t, n.Current())

	assert.Eventually(t, func() bool {
		return n.Current() == nil
	}, time.Second, 5*time.Millisecond)
}

func TestNotifier_SupersededTimerDoesNotClearNewerToast(t *testing.T) {
	n := NewNotifier(30*time.Millisecond, event.NewBus())
	defer n.Close()

	n.Show(model.ToastInfo, "old")
	time.Sleep(10 * time.Millisecond)
	replacement := n.Show(model.ToastSuccess, "new")

	// Past the original toast's expiry, the replacement must still be
	// visible because showing it rearmed the timer.
	time.Sleep(25 * time.Millisecond)
	current := n.Current()
	require.NotNil(t, current)
	assert.Equal(t, replacement.ID, current.ID)
}

func TestNotifier_CurrentReturnsCopy(t *testing.T) {
	n := NewNotifier(time.Minute, event.NewBus())
	defer n.Close()

	n.Show(model.ToastInfo, "original")

	got := n.Current()
	require.NotNil(t, got)
	got.Text = "mutated"

	again := n.Current()
	require.NotNil(t, again)
	assert.Equal(t, "original", again.Text)
}

func TestNotifier_CloseClearsSlot(t *testing.T) {
	n := NewNotifier(time.Minute, event.NewBus())

	n.Show(model.ToastError, "pending")
	n.Close()

	assert.Nil(t, n.Current())
}
