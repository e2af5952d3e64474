package ports

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownReportType is returned when the requested report type is not
// one of the selectable types.
var ErrUnknownReportType = errors.New("unknown report type")

// Report types selectable on the reports screen. Wire values are the
// Portuguese labels used in the export filename (relatorio-<type>.<ext>).
const (
	ReportOrders   = "pedidos"
	ReportProducts = "produtos"
	ReportUsers    = "usuarios"
)

// ReportFilter narrows the exported rows. Zero values mean no filter; the
// status filter applies to orders, category filters to products and the
// role filter to users.
type ReportFilter struct {
	Type          string
	DateFrom      time.Time
	DateTo        time.Time
	Status        string
	CategoryID    int
	SubcategoryID int
	RoleID        int
}

// ReportTable is a rendered report: one header row plus data rows in
// column order.
type ReportTable struct {
	Type    string
	Headers []string
	Rows    [][]any
}

type ReportService interface {
	Build(ctx context.Context, filter ReportFilter) (*ReportTable, error)
	// CSV renders the table with each cell JSON-stringified, matching the
	// dashboard's delimiter-escaping scheme.
	CSV(table *ReportTable) []byte
	// Excel renders the table as a single-sheet workbook.
	Excel(table *ReportTable) ([]byte, error)
}
