package console

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

// Notifier queues one transient message at a time. A new toast replaces the
// visible one and cancels its expiry timer, so a stale timer can never clear
// a newer message.
type Notifier struct {
	ttl time.Duration
	bus event.Bus

	mu      sync.Mutex
	current *model.Toast
	timer   *time.Timer
}

func NewNotifier(ttl time.Duration, bus event.Bus) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Notifier{ttl: ttl, bus: bus}
}

// Show replaces the current toast and schedules its expiry.
func (n *Notifier) Show(kind model.ToastKind, text string) model.Toast {
	toast := model.Toast{ID: uuid.NewString(), Kind: kind, Text: text}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = &toast
	n.timer = time.AfterFunc(n.ttl, func() { n.expire(toast.ID) })
	n.mu.Unlock()

	event.Emit(n.bus, event.TypeToastShown, toast)
	return toast
}

// Current returns the visible toast, or nil when none is shown.
func (n *Notifier) Current() *model.Toast {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	copied := *n.current
	return &copied
}

// Close cancels the pending expiry timer. Used on teardown.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	// The timer may fire just as a newer toast superseded this one; only the
	// toast that armed the timer may clear the slot.
	if n.current == nil || n.current.ID != id {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	n.mu.Unlock()

	event.Emit(n.bus, event.TypeToastCleared, map[string]string{"id": id})
}
