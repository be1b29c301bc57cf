// Package backend is the typed HTTP client for the scanning backend. The
// backend is a black box: this package only mirrors its request/response
// contracts and forwards the operator's session cookie on every call.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-order-console/internal/model"
)

const sessionCookieName = "session"

type Client struct {
	baseURL       string
	sessionCookie string
	http          *http.Client
}

func New(baseURL string, sessionCookie string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		sessionCookie: sessionCookie,
		http:          &http.Client{Timeout: timeout},
	}
}

// commandResult is the `{success, message}` envelope the backend returns for
// every write.
type commandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ScanResult reports the outcome of a manual scan trigger.
type ScanResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ScanStatus is the raw auto-scan state of the backend.
type ScanStatus struct {
	AutoScan     bool `json:"auto_scan"`
	IsProcessing bool `json:"is_processing"`
}

const (
	ScanStatusNoNew   = "no_new"
	ScanStatusUpdated = "updated"
	ScanStatusBlocked = "blocked"
)

func (c *Client) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.getJSON(ctx, "/api/orders", &orders); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (c *Client) CreateOrder(ctx context.Context, draft model.OrderDraft) error {
	res, err := c.postJSON(ctx, "/api/orders", draft)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("%w: %s", model.ErrBackendRejected, res.Message)
	}
	return nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	res, err := c.do(ctx, http.MethodDelete, "/delete/"+strconv.Itoa(id), nil)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if !res.Success {
		return model.ErrOrderNotFound
	}
	return nil
}

func (c *Client) BulkDelete(ctx context.Context, ids []int) (string, error) {
	if len(ids) == 0 {
		return "", model.ErrNoIDsProvided
	}
	res, err := c.postJSON(ctx, "/api/bulk-delete", idsPayload{IDs: ids})
	if err != nil {
		return "", fmt.Errorf("bulk delete: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", model.ErrBackendRejected, res.Message)
	}
	return res.Message, nil
}

func (c *Client) TriggerScan(ctx context.Context) (ScanResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/scan", nil)
	if err != nil {
		return ScanResult{}, err
	}

	var result ScanResult
	if err := c.send(req, &result); err != nil {
		return ScanResult{}, fmt.Errorf("trigger scan: %w", err)
	}
	return result, nil
}

func (c *Client) ScanStatus(ctx context.Context) (ScanStatus, error) {
	var status ScanStatus
	if err := c.getJSON(ctx, "/auto-scan-status", &status); err != nil {
		return ScanStatus{}, fmt.Errorf("scan status: %w", err)
	}
	return status, nil
}

func (c *Client) SetAutoScan(ctx context.Context, enabled bool) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/toggle-auto-scan", enabledPayload{Enabled: enabled})
	if err != nil {
		return err
	}
	if err := c.send(req, &struct{}{}); err != nil {
		return fmt.Errorf("toggle auto-scan: %w", err)
	}
	return nil
}

func (c *Client) ListTrash(ctx context.Context) ([]model.TrashedOrder, error) {
	var trashed []model.TrashedOrder
	if err := c.getJSON(ctx, "/api/trash", &trashed); err != nil {
		return nil, fmt.Errorf("list trash: %w", err)
	}
	return trashed, nil
}

func (c *Client) RestoreOrder(ctx context.Context, id int) error {
	res, err := c.do(ctx, http.MethodPost, "/api/trash/restore/"+strconv.Itoa(id), nil)
	if err != nil {
		return fmt.Errorf("restore order %d: %w", id, err)
	}
	if !res.Success {
		return model.ErrTrashItemNotFound
	}
	return nil
}

func (c *Client) PurgeOrder(ctx context.Context, id int) error {
	res, err := c.do(ctx, http.MethodDelete, "/api/trash/"+strconv.Itoa(id), nil)
	if err != nil {
		return fmt.Errorf("purge order %d: %w", id, err)
	}
	if !res.Success {
		return model.ErrTrashItemNotFound
	}
	return nil
}

func (c *Client) BulkRestore(ctx context.Context, ids []int) (string, error) {
	if len(ids) == 0 {
		return "", model.ErrNoIDsProvided
	}
	res, err := c.postJSON(ctx, "/api/trash/bulk-restore", idsPayload{IDs: ids})
	if err != nil {
		return "", fmt.Errorf("bulk restore: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", model.ErrBackendRejected, res.Message)
	}
	return res.Message, nil
}

func (c *Client) BulkPurge(ctx context.Context, ids []int) (string, error) {
	if len(ids) == 0 {
		return "", model.ErrNoIDsProvided
	}
	res, err := c.postJSON(ctx, "/api/trash/bulk-delete", idsPayload{IDs: ids})
	if err != nil {
		return "", fmt.Errorf("bulk purge: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("%w: %s", model.ErrBackendRejected, res.Message)
	}
	return res.Message, nil
}

// ExportFixed downloads a full-field export in the given format, optionally
// scoped to a set of ids (comma-joined query parameter).
func (c *Client) ExportFixed(ctx context.Context, format model.ExportFormat, ids []int) (*model.ExportFile, error) {
	if !format.Valid() {
		return nil, model.ErrInvalidExportFormat
	}

	path := "/export/" + string(format)
	if len(ids) > 0 {
		path += "?ids=" + joinIDs(ids)
	}

	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	file, err := c.download(req, format)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return file, nil
}

// ExportCustom issues a parameterized export and returns the binary blob.
func (c *Client) ExportCustom(ctx context.Context, cfg model.ExportConfig) (*model.ExportFile, error) {
	if !cfg.Format.Valid() {
		return nil, model.ErrInvalidExportFormat
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/export/custom", cfg)
	if err != nil {
		return nil, err
	}

	file, err := c.download(req, cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("custom export: %w", err)
	}
	return file, nil
}

// ── Helpers ──────────────────────────────────────────────────────

type idsPayload struct {
	IDs []int `json:"ids"`
}

type enabledPayload struct {
	Enabled bool `json:"enabled"`
}

func (c *Client) newRequest(ctx context.Context, method string, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: c.sessionCookie})
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: status %d", model.ErrBackendRejected, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (commandResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return commandResult{}, err
	}

	var res commandResult
	if err := c.send(req, &res); err != nil {
		return commandResult{}, err
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any) (commandResult, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return commandResult{}, err
	}

	var res commandResult
	if err := c.send(req, &res); err != nil {
		return commandResult{}, err
	}
	return res, nil
}

func (c *Client) download(req *http.Request, format model.ExportFormat) (*model.ExportFile, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %d", model.ErrBackendRejected, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &model.ExportFile{
		Name:        "orders_" + time.Now().UTC().Format("20060102_150405") + "." + format.Ext(),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}
