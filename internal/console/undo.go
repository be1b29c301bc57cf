package console

import (
	"context"
	"sync"
)

// UndoStack records the ids of recently soft-deleted orders. Entries are
// consumed strictly last-in-first-out; a popped id is discarded and never
// replayed, even if the restore it triggers fails.
type UndoStack struct {
	mu  sync.Mutex
	ids []int
}

func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Push appends ids in order, so the last argument becomes the next undo
// target. A bulk delete pushes all affected ids; a single undo still restores
// only one of them.
func (u *UndoStack) Push(ids ...int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.ids = append(u.ids, ids...)
}

// Pop removes and returns the most recent id. ok is false when the stack is
// empty.
func (u *UndoStack) Pop() (id int, ok bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.ids) == 0 {
		return 0, false
	}

	id = u.ids[len(u.ids)-1]
	u.ids = u.ids[:len(u.ids)-1]
	return id, true
}

// Scrub drops any pending entries referencing the given ids. Used when a
// trashed order is restored or purged through the trash screen, so a later
// undo cannot target it.
func (u *UndoStack) Scrub(ids ...int) {
	drop := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	kept := u.ids[:0]
	for _, id := range u.ids {
		if _, gone := drop[id]; !gone {
			kept = append(kept, id)
		}
	}
	u.ids = kept
}

func (u *UndoStack) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.ids)
}

// Command is a dispatchable operator action, decoupled from whichever input
// binding (keyboard shortcut, button, HTTP call) triggered it.
type Command interface {
	Name() string
	Execute(ctx context.Context) error
}

// CommandFunc adapts a function to the Command interface.
type CommandFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func NewCommand(name string, fn func(ctx context.Context) error) CommandFunc {
	return CommandFunc{name: name, fn: fn}
}

func (c CommandFunc) Name() string { return c.name }

func (c CommandFunc) Execute(ctx context.Context) error { return c.fn(ctx) }
