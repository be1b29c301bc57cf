package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndoStack_LIFO(t *testing.T) {
	u := NewUndoStack()
	u.Push(1)
	u.Push(2)
	u.Push(3)

	id, ok := u.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	id, ok = u.Pop()
	assert.True(t, ok)
	assert.Equal(t, 2, id)

	assert.Equal(t, 1, u.Len())
}

func TestUndoStack_EmptyPop(t *testing.T) {
	u := NewUndoStack()

	_, ok := u.Pop()
	assert.False(t, ok)
}

func TestUndoStack_BulkPushPopsIndividually(t *testing.T) {
	u := NewUndoStack()
	u.Push(4, 5, 6)

	// The last pushed id is the next undo target.
	id, ok := u.Pop()
	assert.True(t, ok)
	assert.Equal(t, 6, id)
	assert.Equal(t, 2, u.Len())
}

func TestUndoStack_Scrub(t *testing.T) {
	u := NewUndoStack()
	u.Push(1, 2, 3, 2)

	u.Scrub(2)

	assert.Equal(t, 2, u.Len())

	id, _ := u.Pop()
	assert.Equal(t, 3, id)
	id, _ = u.Pop()
	assert.Equal(t, 1, id)
}

func TestUndoStack_PoppedIDIsNeverReplayed(t *testing.T) {
	u := NewUndoStack()
	u.Push(10)

	id, ok := u.Pop()
	assert.True(t, ok)
	assert.Equal(t, 10, id)

	// Even when the restore that consumed the pop fails, the id stays gone.
	_, ok = u.Pop()
	assert.False(t, ok)
}

func TestCommandFunc(t *testing.T) {
	wantErr := errors.New("boom")
	cmd := NewCommand("undo", func(ctx context.Context) error { return wantErr })

	assert.Equal(t, "undo", cmd.Name())
	assert.ErrorIs(t, cmd.Execute(context.Background()), wantErr)
}
