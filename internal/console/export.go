package console

import (
	"sync"

	"go-order-console/internal/model"
)

// ExportBuilder accumulates a user-chosen field set and output format. The
// configuration survives a failed export so the operator can retry without
// rebuilding it; only Reset returns it to the defaults.
type ExportBuilder struct {
	mu     sync.Mutex
	fields map[string]struct{}
	format model.ExportFormat
}

func NewExportBuilder() *ExportBuilder {
	b := &ExportBuilder{}
	b.Reset()
	return b
}

// Reset restores the default field subset and the excel format.
func (b *ExportBuilder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fields = make(map[string]struct{}, len(model.DefaultExportFields))
	for _, f := range model.DefaultExportFields {
		b.fields[f] = struct{}{}
	}
	b.format = model.FormatExcel
}

// SetFormat picks exactly one output format.
func (b *ExportBuilder) SetFormat(format model.ExportFormat) error {
	if !format.Valid() {
		return model.ErrInvalidExportFormat
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.format = format
	return nil
}

// ToggleField flips membership of one field key from the fixed catalog.
func (b *ExportBuilder) ToggleField(key string) error {
	if !knownField(key) {
		return model.ErrUnknownExportField
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.fields[key]; ok {
		delete(b.fields, key)
		return nil
	}
	b.fields[key] = struct{}{}
	return nil
}

// SetFields replaces the field set wholesale; unknown keys are rejected.
func (b *ExportBuilder) SetFields(keys []string) error {
	for _, key := range keys {
		if !knownField(key) {
			return model.ErrUnknownExportField
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.fields = make(map[string]struct{}, len(keys))
	for _, key := range keys {
		b.fields[key] = struct{}{}
	}
	return nil
}

// SelectAllFields includes the entire exportable catalog.
func (b *ExportBuilder) SelectAllFields() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.fields = make(map[string]struct{}, len(model.ExportableFields))
	for _, f := range model.ExportableFields {
		b.fields[f] = struct{}{}
	}
}

func (b *ExportBuilder) ClearFields() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fields = map[string]struct{}{}
}

func (b *ExportBuilder) Fields() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.SortedFieldSet(b.fields)
}

func (b *ExportBuilder) Format() model.ExportFormat {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.format
}

// Config snapshots the builder plus the given id scope into one export
// request payload. A nil or empty scope means the full collection; the ids
// key is then absent from the wire payload entirely.
func (b *ExportBuilder) Config(ids []int) model.ExportConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg := model.ExportConfig{
		Fields: model.SortedFieldSet(b.fields),
		Format: b.format,
	}
	if len(ids) > 0 {
		cfg.IDs = append([]int(nil), ids...)
	}
	return cfg
}

// FullConfig is the degenerate single-click case: every field, the given
// format, no configuration step.
func FullConfig(format model.ExportFormat, ids []int) model.ExportConfig {
	cfg := model.ExportConfig{
		Fields: append([]string(nil), model.ExportableFields...),
		Format: format,
	}
	if len(ids) > 0 {
		cfg.IDs = append([]int(nil), ids...)
	}
	return cfg
}

func knownField(key string) bool {
	for _, f := range model.ExportableFields {
		if f == key {
			return true
		}
	}
	return false
}
