package model

import "sort"

// ExportFormat is one of the fixed output formats the backend can produce.
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatPDF   ExportFormat = "pdf"
	FormatCSV   ExportFormat = "csv"
	FormatJSON  ExportFormat = "json"
	FormatXML   ExportFormat = "xml"
)

var exportFormats = map[ExportFormat]string{
	FormatExcel: "xlsx",
	FormatPDF:   "pdf",
	FormatCSV:   "csv",
	FormatJSON:  "json",
	FormatXML:   "xml",
}

func (f ExportFormat) Valid() bool {
	_, ok := exportFormats[f]
	return ok
}

// Ext returns the file extension for the format.
func (f ExportFormat) Ext() string {
	return exportFormats[f]
}

// ExportableFields is the fixed catalog of order attributes an export may
// carry, keyed by their wire names.
var ExportableFields = []string{
	"order_number",
	"product_name",
	"quantity_ordered",
	"unit",
	"delivery_due_date",
	"retailer_name",
	"retailer_email",
	"retailer_address",
	"retailer_phone",
	"client_email_subject",
	"order_status",
	"priority_level",
	"confidence_score",
	"source_of_order",
	"created_at",
	"remarks",
}

// DefaultExportFields mirrors the columns of the backend's fixed-format
// report.
var DefaultExportFields = []string{
	"order_number",
	"product_name",
	"quantity_ordered",
	"delivery_due_date",
	"retailer_name",
	"retailer_email",
	"priority_level",
	"confidence_score",
	"order_status",
}

// ExportConfig is the payload of one export request. It is constructed fresh
// per export action and never persisted. An empty IDs slice means
// full-collection scope and is omitted from the wire payload.
type ExportConfig struct {
	Fields []string     `json:"fields"`
	Format ExportFormat `json:"format"`
	IDs    []int        `json:"ids,omitempty"`
}

// ExportFile is a materialized export ready to hand to the operator.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// SortedFieldSet returns the catalog-ordered slice for a field set so export
// payloads are deterministic.
func SortedFieldSet(fields map[string]struct{}) []string {
	out := make([]string, 0, len(fields))
	for f := range fields {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return fieldRank(out[i]) < fieldRank(out[j]) })
	return out
}

func fieldRank(field string) int {
	for i, f := range ExportableFields {
		if f == field {
			return i
		}
	}
	return len(ExportableFields)
}
