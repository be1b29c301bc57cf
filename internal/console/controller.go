package console

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-order-console/internal/backend"
	"go-order-console/internal/event"
	"go-order-console/internal/model"
)

// Backend is every backend interaction the controller can issue. Each call is
// an independent suspension point; polling continues regardless of in-flight
// commands.
type Backend interface {
	OrderReader
	ScanStatusClient
	CreateOrder(ctx context.Context, draft model.OrderDraft) error
	DeleteOrder(ctx context.Context, id int) error
	BulkDelete(ctx context.Context, ids []int) (string, error)
	TriggerScan(ctx context.Context) (backend.ScanResult, error)
	ListTrash(ctx context.Context) ([]model.TrashedOrder, error)
	RestoreOrder(ctx context.Context, id int) error
	PurgeOrder(ctx context.Context, id int) error
	BulkRestore(ctx context.Context, ids []int) (string, error)
	BulkPurge(ctx context.Context, ids []int) (string, error)
	ExportFixed(ctx context.Context, format model.ExportFormat, ids []int) (*model.ExportFile, error)
	ExportCustom(ctx context.Context, cfg model.ExportConfig) (*model.ExportFile, error)
}

// Auditor records operator write commands. Implementations must never fail
// the command being recorded.
type Auditor interface {
	Record(ctx context.Context, command string, actorIP string, status string, subject string, errText string)
}

// Options are the controller's timing knobs.
type Options struct {
	OrderPollInterval  time.Duration
	StatusPollInterval time.Duration
	ProcessingDebounce time.Duration
	ToastTTL           time.Duration
}

func (o *Options) fillDefaults() {
	if o.OrderPollInterval <= 0 {
		o.OrderPollInterval = 5 * time.Second
	}
	if o.StatusPollInterval <= 0 {
		o.StatusPollInterval = 2 * time.Second
	}
	if o.ProcessingDebounce <= 0 {
		o.ProcessingDebounce = 100 * time.Millisecond
	}
	if o.ToastTTL <= 0 {
		o.ToastTTL = 3 * time.Second
	}
}

// Controller composes the order store, selection, undo stack, scan monitor,
// toast notifier and export builder into the review workflow. All mutation of
// the owned state flows through its methods.
type Controller struct {
	backend   Backend
	store     *OrderStore
	selection *Selection
	undo      *UndoStack
	toasts    *Notifier
	monitor   *ScanMonitor
	exports   *ExportBuilder
	bus       event.Bus
	audit     Auditor
	opts      Options

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewController(be Backend, bus event.Bus, audit Auditor, opts Options) *Controller {
	opts.fillDefaults()

	toasts := NewNotifier(opts.ToastTTL, bus)
	return &Controller{
		backend:   be,
		store:     NewOrderStore(be, bus),
		selection: NewSelection(),
		undo:      NewUndoStack(),
		toasts:    toasts,
		monitor:   NewScanMonitor(be, toasts, bus, opts.ProcessingDebounce),
		exports:   NewExportBuilder(),
		bus:       bus,
		audit:     audit,
		opts:      opts,
	}
}

// Activate refreshes immediately and starts the polling tasks. They run until
// Deactivate or until the given context is cancelled.
func (c *Controller) Activate(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(2)
	go c.pollOrders(runCtx)
	go c.pollStatus(runCtx)
}

// Deactivate tears down the polling tasks and pending timers
// deterministically. In-flight requests are not aborted; their results are
// discarded with the state they would have mutated.
func (c *Controller) Deactivate() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	c.toasts.Close()
	c.monitor.Close()
}

func (c *Controller) pollOrders(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opts.OrderPollInterval)
	defer ticker.Stop()

	_ = c.store.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.store.Refresh(ctx)
		}
	}
}

func (c *Controller) pollStatus(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.opts.StatusPollInterval)
	defer ticker.Stop()

	c.monitor.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.monitor.Poll(ctx)
		}
	}
}

// ViewData is one rendered snapshot of the live screen.
type ViewData struct {
	Orders         []model.Order `json:"orders"`
	SelectedIDs    []int         `json:"selected_ids"`
	AutoScan       bool          `json:"auto_scan"`
	ShowProcessing bool          `json:"show_processing"`
	Toast          *model.Toast  `json:"toast,omitempty"`
}

// View applies the operator's filter and sort to the reconciled collection.
func (c *Controller) View(query string, sortField string, direction string) ViewData {
	autoScan, _, indicator := c.monitor.Snapshot()

	return ViewData{
		Orders:         ApplyView(c.store.Orders(), query, sortField, direction),
		SelectedIDs:    c.selection.IDs(),
		AutoScan:       autoScan,
		ShowProcessing: indicator,
		Toast:          c.toasts.Current(),
	}
}

func (c *Controller) Stats() model.OrderStats {
	return c.store.Stats(time.Now())
}

func (c *Controller) Selection() *Selection { return c.selection }

func (c *Controller) Exports() *ExportBuilder { return c.exports }

func (c *Controller) UndoDepth() int { return c.undo.Len() }

// Refresh forces an immediate reconciliation outside the polling cadence.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.store.Refresh(ctx)
}

// ── Live screen commands ─────────────────────────────────────────

// Delete soft-deletes one order. On success the id joins the undo stack, is
// evicted from the selection in the same operation, and the view refreshes.
func (c *Controller) Delete(ctx context.Context, id int, actor string) error {
	if err := c.backend.DeleteOrder(ctx, id); err != nil {
		c.toasts.Show(model.ToastError, "Could not delete the order.")
		c.record(ctx, "order.delete", actor, idSubject(id), err)
		return err
	}

	c.undo.Push(id)
	c.selection.Evict(id)
	c.toasts.Show(model.ToastDeleted, "Order moved to trash. Press Ctrl+Z to undo.")
	event.Emit(c.bus, event.TypeOrderDeleted, map[string]int{"id": id})
	_ = c.store.Refresh(ctx)
	c.record(ctx, "order.delete", actor, idSubject(id), nil)
	return nil
}

// BulkDeleteSelected soft-deletes every selected order. All affected ids join
// the undo stack individually, so a single undo afterwards restores only the
// most recent one.
func (c *Controller) BulkDeleteSelected(ctx context.Context, actor string) error {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return model.ErrNoIDsProvided
	}

	message, err := c.backend.BulkDelete(ctx, ids)
	if err != nil {
		c.toasts.Show(model.ToastError, "Could not delete the selected orders.")
		c.record(ctx, "order.bulk_delete", actor, idsSubject(ids), err)
		return err
	}

	c.undo.Push(ids...)
	c.selection.Evict(ids...)
	c.toasts.Show(model.ToastDeleted, message)
	event.Emit(c.bus, event.TypeOrderDeleted, map[string][]int{"ids": ids})
	_ = c.store.Refresh(ctx)
	c.record(ctx, "order.bulk_delete", actor, idsSubject(ids), nil)
	return nil
}

// Undo restores the most recently deleted order. An empty stack is a no-op:
// no request, no toast. A failed restore does not push the id back; the
// operator can still restore it from the trash screen.
func (c *Controller) Undo(ctx context.Context, actor string) error {
	id, ok := c.undo.Pop()
	if !ok {
		return nil
	}

	if err := c.backend.RestoreOrder(ctx, id); err != nil {
		c.toasts.Show(model.ToastError, "Could not restore the order.")
		c.record(ctx, "order.undo", actor, idSubject(id), err)
		return err
	}

	c.toasts.Show(model.ToastRestored, "Order restored successfully!")
	event.Emit(c.bus, event.TypeOrderRestored, map[string]int{"id": id})
	_ = c.store.Refresh(ctx)
	c.record(ctx, "order.undo", actor, idSubject(id), nil)
	return nil
}

// UndoCommand wraps Undo as a dispatchable command for any input binding.
func (c *Controller) UndoCommand(actor string) Command {
	return NewCommand("undo", func(ctx context.Context) error {
		return c.Undo(ctx, actor)
	})
}

// CreateOrder adds a manually entered order. A backend validation failure is
// surfaced with the backend's own message; the shell keeps the form open.
func (c *Controller) CreateOrder(ctx context.Context, draft model.OrderDraft, actor string) error {
	if err := c.backend.CreateOrder(ctx, draft); err != nil {
		c.toasts.Show(model.ToastError, err.Error())
		c.record(ctx, "order.create", actor, draft.ProductName, err)
		return err
	}

	c.toasts.Show(model.ToastSuccess, "Order added successfully!")
	event.Emit(c.bus, event.TypeOrderCreated, nil)
	_ = c.store.Refresh(ctx)
	c.record(ctx, "order.create", actor, draft.ProductName, nil)
	return nil
}

// ── Scan commands ────────────────────────────────────────────────

// TriggerScan runs a manual scan and reports the outcome.
func (c *Controller) TriggerScan(ctx context.Context, actor string) (backend.ScanResult, error) {
	result, err := c.backend.TriggerScan(ctx)
	if err != nil {
		c.toasts.Show(model.ToastError, "Scan failed.")
		c.record(ctx, "scan.trigger", actor, "", err)
		return backend.ScanResult{}, err
	}

	switch result.Status {
	case backend.ScanStatusNoNew:
		c.toasts.Show(model.ToastInfo, "No new order emails found.")
	case backend.ScanStatusUpdated:
		c.toasts.Show(model.ToastSuccess, "Mail data updated successfully!")
		_ = c.store.Refresh(ctx)
	default:
		c.toasts.Show(model.ToastInfo, result.Message)
	}

	c.record(ctx, "scan.trigger", actor, result.Status, nil)
	return result, nil
}

// ToggleAutoScan flips auto-scan optimistically and reports whether the
// change stuck.
func (c *Controller) ToggleAutoScan(ctx context.Context, enabled bool, actor string) (ToggleOutcome, error) {
	outcome, err := c.monitor.ToggleAutoScan(ctx, enabled)
	if outcome == ToggleRolledBack {
		c.toasts.Show(model.ToastError, "Could not update automatic scan.")
	}
	c.record(ctx, "scan.auto_toggle", actor, boolSubject(enabled), err)
	return outcome, err
}

// ScanState returns the monitor snapshot for the shell.
func (c *Controller) ScanState() (autoScan bool, processing bool, indicator bool) {
	return c.monitor.Snapshot()
}

// ── Trash screen commands ────────────────────────────────────────

func (c *Controller) Trash(ctx context.Context) ([]model.TrashedOrder, error) {
	return c.backend.ListTrash(ctx)
}

// RestoreFromTrash returns one trashed order to the live collection and
// scrubs it from any pending undo entry.
func (c *Controller) RestoreFromTrash(ctx context.Context, id int, actor string) error {
	if err := c.backend.RestoreOrder(ctx, id); err != nil {
		c.toasts.Show(model.ToastError, "Could not restore the order.")
		c.record(ctx, "trash.restore", actor, idSubject(id), err)
		return err
	}

	c.undo.Scrub(id)
	c.toasts.Show(model.ToastSuccess, "Order restored successfully!")
	event.Emit(c.bus, event.TypeOrderRestored, map[string]int{"id": id})
	_ = c.store.Refresh(ctx)
	c.record(ctx, "trash.restore", actor, idSubject(id), nil)
	return nil
}

// PurgeFromTrash permanently deletes one trashed order. Irreversible; the
// shell asks for explicit confirmation before calling this.
func (c *Controller) PurgeFromTrash(ctx context.Context, id int, actor string) error {
	if err := c.backend.PurgeOrder(ctx, id); err != nil {
		c.toasts.Show(model.ToastError, "Could not delete the order.")
		c.record(ctx, "trash.purge", actor, idSubject(id), err)
		return err
	}

	c.undo.Scrub(id)
	c.toasts.Show(model.ToastDeleted, "Order permanently deleted.")
	event.Emit(c.bus, event.TypeOrderPurged, map[string]int{"id": id})
	c.record(ctx, "trash.purge", actor, idSubject(id), nil)
	return nil
}

func (c *Controller) BulkRestoreFromTrash(ctx context.Context, ids []int, actor string) error {
	if len(ids) == 0 {
		return model.ErrNoIDsProvided
	}

	message, err := c.backend.BulkRestore(ctx, ids)
	if err != nil {
		c.toasts.Show(model.ToastError, "Could not restore the selected orders.")
		c.record(ctx, "trash.bulk_restore", actor, idsSubject(ids), err)
		return err
	}

	c.undo.Scrub(ids...)
	c.toasts.Show(model.ToastSuccess, message)
	event.Emit(c.bus, event.TypeOrderRestored, map[string][]int{"ids": ids})
	_ = c.store.Refresh(ctx)
	c.record(ctx, "trash.bulk_restore", actor, idsSubject(ids), nil)
	return nil
}

func (c *Controller) BulkPurgeFromTrash(ctx context.Context, ids []int, actor string) error {
	if len(ids) == 0 {
		return model.ErrNoIDsProvided
	}

	message, err := c.backend.BulkPurge(ctx, ids)
	if err != nil {
		c.toasts.Show(model.ToastError, "Could not delete the selected orders.")
		c.record(ctx, "trash.bulk_purge", actor, idsSubject(ids), err)
		return err
	}

	c.undo.Scrub(ids...)
	c.toasts.Show(model.ToastDeleted, message)
	event.Emit(c.bus, event.TypeOrderPurged, map[string][]int{"ids": ids})
	c.record(ctx, "trash.bulk_purge", actor, idsSubject(ids), nil)
	return nil
}

// ── Export commands ──────────────────────────────────────────────

// Export fires the configured export, scoped to the selection snapshot taken
// now. The builder configuration is preserved on failure so the operator can
// retry without rebuilding it.
func (c *Controller) Export(ctx context.Context, actor string) (*model.ExportFile, error) {
	cfg := c.exports.Config(c.selection.IDs())

	file, err := c.backend.ExportCustom(ctx, cfg)
	if err != nil {
		c.toasts.Show(model.ToastError, "Export failed.")
		c.record(ctx, "export.custom", actor, string(cfg.Format), err)
		return nil, err
	}

	c.toasts.Show(model.ToastSuccess, "Export ready.")
	event.Emit(c.bus, event.TypeExportCompleted, map[string]string{"file": file.Name})
	c.record(ctx, "export.custom", actor, string(cfg.Format), nil)
	return file, nil
}

// ExportFixed is the single-click shortcut: full field list, no configuration
// step, same selection scoping.
func (c *Controller) ExportFixed(ctx context.Context, format model.ExportFormat, actor string) (*model.ExportFile, error) {
	file, err := c.backend.ExportFixed(ctx, format, c.selection.IDs())
	if err != nil {
		c.toasts.Show(model.ToastError, "Export failed.")
		c.record(ctx, "export.fixed", actor, string(format), err)
		return nil, err
	}

	c.toasts.Show(model.ToastSuccess, "Export ready.")
	event.Emit(c.bus, event.TypeExportCompleted, map[string]string{"file": file.Name})
	c.record(ctx, "export.fixed", actor, string(format), nil)
	return file, nil
}

// ── Helpers ──────────────────────────────────────────────────────

func (c *Controller) record(ctx context.Context, command string, actor string, subject string, err error) {
	if c.audit == nil {
		return
	}

	status := "ok"
	errText := ""
	if err != nil {
		status = "failed"
		errText = err.Error()
	}
	c.audit.Record(ctx, command, actor, status, subject, errText)
}

func idSubject(id int) string {
	return strconv.Itoa(id)
}

func idsSubject(ids []int) string {
	return joinInts(ids)
}

func boolSubject(b bool) string {
	return strconv.FormatBool(b)
}

func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
