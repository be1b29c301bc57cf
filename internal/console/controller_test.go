package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-order-console/internal/backend"
	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

// fakeBackend answers every controller call from in-memory state. Individual
// tests override the error fields to simulate failures.
type fakeBackend struct {
	orders  []model.Order
	trash   []model.TrashedOrder
	scan    backend.ScanStatus
	scanRes backend.ScanResult

	listErr    error
	deleteErr  error
	restoreErr error
	purgeErr   error
	createErr  error
	exportErr  error
	toggleErr  error

	deleted  []int
	restored []int
	purged   []int
	exports  []model.ExportConfig
}

func (f *fakeBackend) ListOrders(context.Context) ([]model.Order, error) {
	return f.orders, f.listErr
}

func (f *fakeBackend) ScanStatus(context.Context) (backend.ScanStatus, error) {
	return f.scan, nil
}

func (f *fakeBackend) SetAutoScan(_ context.Context, enabled bool) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	f.scan.AutoScan = enabled
	return nil
}

func (f *fakeBackend) CreateOrder(context.Context, model.OrderDraft) error {
	return f.createErr
}

func (f *fakeBackend) DeleteOrder(_ context.Context, id int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) BulkDelete(_ context.Context, ids []int) (string, error) {
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	f.deleted = append(f.deleted, ids...)
	return "Selected orders moved to trash.", nil
}

func (f *fakeBackend) TriggerScan(context.Context) (backend.ScanResult, error) {
	return f.scanRes, nil
}

func (f *fakeBackend) ListTrash(context.Context) ([]model.TrashedOrder, error) {
	return f.trash, nil
}

func (f *fakeBackend) RestoreOrder(_ context.Context, id int) error {
	if f.restoreErr != nil {
		return f.restoreErr
	}
	f.restored = append(f.restored, id)
	return nil
}

func (f *fakeBackend) PurgeOrder(_ context.Context, id int) error {
	if f.purgeErr != nil {
		return f.purgeErr
	}
	f.purged = append(f.purged, id)
	return nil
}

func (f *fakeBackend) BulkRestore(_ context.Context, ids []int) (string, error) {
	if f.restoreErr != nil {
		return "", f.restoreErr
	}
	f.restored = append(f.restored, ids...)
	return "Selected orders restored.", nil
}

func (f *fakeBackend) BulkPurge(_ context.Context, ids []int) (string, error) {
	if f.purgeErr != nil {
		return "", f.purgeErr
	}
	f.purged = append(f.purged, ids...)
	return "Selected orders permanently deleted.", nil
}

func (f *fakeBackend) ExportFixed(_ context.Context, format model.ExportFormat, ids []int) (*model.ExportFile, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	f.exports = append(f.exports, FullConfig(format, ids))
	return &model.ExportFile{Name: "orders.xlsx", ContentType: "application/octet-stream", Data: []byte{1}}, nil
}

func (f *fakeBackend) ExportCustom(_ context.Context, cfg model.ExportConfig) (*model.ExportFile, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	f.exports = append(f.exports, cfg)
	return &model.ExportFile{Name: "orders.csv", ContentType: "text/csv", Data: []byte("id\n")}, nil
}

func newTestController(t *testing.T, be *fakeBackend) *Controller {
	t.Helper()

	c := NewController(be, event.NewBus(), nil, Options{})
	t.Cleanup(func() {
		c.toasts.Close()
		c.monitor.Close()
	})
	return c
}

func TestController_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success pushes undo and evicts selection", func(t *testing.T) {
		be := &fakeBackend{orders: []model.Order{{ID: 1}, {ID: 2}}}
		c := newTestController(t, be)
		c.Selection().SelectAll([]int{1, 2})

		require.NoError(t, c.Delete(ctx, 1, "10.0.0.1"))

		assert.Equal(t, []int{1}, be.deleted)
		assert.Equal(t, 1, c.UndoDepth())
		assert.Equal(t, []int{2}, c.Selection().IDs())

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastDeleted, toast.Kind)
	})

	t.Run("failure leaves undo and selection untouched", func(t *testing.T) {
		be := &fakeBackend{deleteErr: errors.New("boom")}
		c := newTestController(t, be)
		c.Selection().Toggle(1)

		require.Error(t, c.Delete(ctx, 1, "10.0.0.1"))

		assert.Zero(t, c.UndoDepth())
		assert.True(t, c.Selection().Has(1))

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastError, toast.Kind)
	})
}

func TestController_BulkDeleteSelected(t *testing.T) {
	ctx := context.Background()

	t.Run("empty selection is rejected without a request", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)

		err := c.BulkDeleteSelected(ctx, "10.0.0.1")
		assert.ErrorIs(t, err, model.ErrNoIDsProvided)
		assert.Empty(t, be.deleted)
	})

	t.Run("ids join the undo stack individually", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		c.Selection().SelectAll([]int{3, 1, 2})

		require.NoError(t, c.BulkDeleteSelected(ctx, "10.0.0.1"))

		assert.Equal(t, 3, c.UndoDepth())
		assert.Zero(t, c.Selection().Len())

		// One undo restores exactly one order, the last pushed id.
		require.NoError(t, c.Undo(ctx, "10.0.0.1"))
		assert.Equal(t, []int{3}, be.restored)
		assert.Equal(t, 2, c.UndoDepth())
	})
}

func TestController_Undo(t *testing.T) {
	ctx := context.Background()

	t.Run("empty stack is a silent no-op", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)

		require.NoError(t, c.Undo(ctx, "10.0.0.1"))

		assert.Empty(t, be.restored)
		assert.Nil(t, c.View("", "", "").Toast)
	})

	t.Run("restores the most recent delete", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		require.NoError(t, c.Delete(ctx, 7, "10.0.0.1"))

		require.NoError(t, c.Undo(ctx, "10.0.0.1"))

		assert.Equal(t, []int{7}, be.restored)
		assert.Zero(t, c.UndoDepth())

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastRestored, toast.Kind)
		assert.Equal(t, "Order restored successfully!", toast.Text)
	})

	t.Run("failed restore does not re-push the id", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		require.NoError(t, c.Delete(ctx, 7, "10.0.0.1"))

		be.restoreErr = errors.New("gone")
		require.Error(t, c.Undo(ctx, "10.0.0.1"))

		// The id was consumed; a second undo has nothing to replay.
		assert.Zero(t, c.UndoDepth())
		be.restoreErr = nil
		require.NoError(t, c.Undo(ctx, "10.0.0.1"))
		assert.Empty(t, be.restored)
	})

	t.Run("command wrapper dispatches the same operation", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		require.NoError(t, c.Delete(ctx, 4, "10.0.0.1"))

		cmd := c.UndoCommand("10.0.0.1")
		assert.Equal(t, "undo", cmd.Name())
		require.NoError(t, cmd.Execute(ctx))
		assert.Equal(t, []int{4}, be.restored)
	})
}

func TestController_TrashOperationsScrubUndo(t *testing.T) {
	ctx := context.Background()

	t.Run("restore from trash", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		require.NoError(t, c.Delete(ctx, 5, "10.0.0.1"))

		require.NoError(t, c.RestoreFromTrash(ctx, 5, "10.0.0.1"))

		// A later undo must not target the already restored order.
		assert.Zero(t, c.UndoDepth())
	})

	t.Run("bulk purge", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		c.Selection().SelectAll([]int{1, 2})
		require.NoError(t, c.BulkDeleteSelected(ctx, "10.0.0.1"))
		require.Equal(t, 2, c.UndoDepth())

		require.NoError(t, c.BulkPurgeFromTrash(ctx, []int{1, 2}, "10.0.0.1"))

		assert.Equal(t, []int{1, 2}, be.purged)
		assert.Zero(t, c.UndoDepth())
	})

	t.Run("empty bulk ids rejected", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)

		assert.ErrorIs(t, c.BulkRestoreFromTrash(ctx, nil, "10.0.0.1"), model.ErrNoIDsProvided)
		assert.ErrorIs(t, c.BulkPurgeFromTrash(ctx, nil, "10.0.0.1"), model.ErrNoIDsProvided)
	})
}

func TestController_TriggerScan(t *testing.T) {
	ctx := context.Background()

	t.Run("no new mail", func(t *testing.T) {
		be := &fakeBackend{scanRes: backend.ScanResult{Status: backend.ScanStatusNoNew}}
		c := newTestController(t, be)

		result, err := c.TriggerScan(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, backend.ScanStatusNoNew, result.Status)

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastInfo, toast.Kind)
		assert.Equal(t, "No new order emails found.", toast.Text)
	})

	t.Run("updated refreshes and celebrates", func(t *testing.T) {
		be := &fakeBackend{
			orders:  []model.Order{{ID: 9}},
			scanRes: backend.ScanResult{Status: backend.ScanStatusUpdated},
		}
		c := newTestController(t, be)

		_, err := c.TriggerScan(ctx, "10.0.0.1")
		require.NoError(t, err)

		view := c.View("", "", "")
		require.NotNil(t, view.Toast)
		assert.Equal(t, model.ToastSuccess, view.Toast.Kind)
		assert.Len(t, view.Orders, 1)
	})
}

func TestController_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("scoped to the selection snapshot", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)
		c.Selection().SelectAll([]int{2, 4})

		file, err := c.Export(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, "orders.csv", file.Name)

		require.Len(t, be.exports, 1)
		assert.Equal(t, []int{2, 4}, be.exports[0].IDs)
	})

	t.Run("builder survives a failed export", func(t *testing.T) {
		be := &fakeBackend{exportErr: errors.New("render failed")}
		c := newTestController(t, be)
		require.NoError(t, c.Exports().SetFormat(model.FormatPDF))
		require.NoError(t, c.Exports().SetFields([]string{"order_number", "product_name"}))

		_, err := c.Export(ctx, "10.0.0.1")
		require.Error(t, err)

		assert.Equal(t, model.FormatPDF, c.Exports().Format())
		assert.ElementsMatch(t, []string{"order_number", "product_name"}, c.Exports().Fields())

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastError, toast.Kind)
	})

	t.Run("fixed shortcut uses the full catalog", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)

		_, err := c.ExportFixed(ctx, model.FormatExcel, "10.0.0.1")
		require.NoError(t, err)

		require.Len(t, be.exports, 1)
		assert.ElementsMatch(t, model.ExportableFields, be.exports[0].Fields)
	})
}

func TestController_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("validation failure surfaces the backend message", func(t *testing.T) {
		be := &fakeBackend{createErr: errors.New("Product name is required")}
		c := newTestController(t, be)

		err := c.CreateOrder(ctx, model.OrderDraft{}, "10.0.0.1")
		require.Error(t, err)

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, model.ToastError, toast.Kind)
		assert.Equal(t, "Product name is required", toast.Text)
	})

	t.Run("success", func(t *testing.T) {
		be := &fakeBackend{}
		c := newTestController(t, be)

		require.NoError(t, c.CreateOrder(ctx, model.OrderDraft{ProductName: "Rice"}, "10.0.0.1"))

		toast := c.View("", "", "").Toast
		require.NotNil(t, toast)
		assert.Equal(t, "Order added successfully!", toast.Text)
	})
}

func TestController_ViewSnapshot(t *testing.T) {
	be := &fakeBackend{orders: []model.Order{
		{ID: 1, ProductName: "Rice"},
		{ID: 2, ProductName: "Oil"},
	}}
	c := newTestController(t, be)
	require.NoError(t, c.Refresh(context.Background()))
	c.Selection().Toggle(2)

	view := c.View("oil", "", "")

	assert.Len(t, view.Orders, 1)
	assert.Equal(t, 2, view.Orders[0].ID)
	// The selection is reported in full, independent of the filter.
	assert.Equal(t, []int{2}, view.SelectedIDs)
}
