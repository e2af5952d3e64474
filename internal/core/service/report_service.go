package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/painelfacil/painel-api/internal/core/ports"
)

// ReportService renders the filtered report tables and their CSV/XLSX
// exports. Rows are built server-side from the current collections; the
// export filename convention is relatorio-<type>.<ext>.
type ReportService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewReportService(orders ports.OrderRepository, products ports.ProductRepository, users ports.UserRepository, logger zerolog.Logger) *ReportService {
	return &ReportService{orders: orders, products: products, users: users, logger: logger}
}

func (s *ReportService) Build(ctx context.Context, filter ports.ReportFilter) (*ports.ReportTable, error) {
	switch filter.Type {
	case ports.ReportOrders:
		return s.buildOrders(ctx, filter)
	case ports.ReportProducts:
		return s.buildProducts(ctx, filter)
	case ports.ReportUsers:
		return s.buildUsers(ctx, filter)
	}
	return nil, ports.ErrUnknownReportType
}

func (s *ReportService) buildOrders(ctx context.Context, filter ports.ReportFilter) (*ports.ReportTable, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	table := &ports.ReportTable{
		Type:    ports.ReportOrders,
		Headers: []string{"id", "customerName", "customerPhone", "status", "total", "createdAt"},
	}
	for _, o := range orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		if !inDateRange(o.CreatedAt, filter.DateFrom, filter.DateTo) {
			continue
		}
		table.Rows = append(table.Rows, []any{o.ID, o.CustomerName, o.CustomerPhone, string(o.Status), o.Total(), o.CreatedAt.Format(time.RFC3339)})
	}
	return table, nil
}

func (s *ReportService) buildProducts(ctx context.Context, filter ports.ReportFilter) (*ports.ReportTable, error) {
	products, _, err := s.products.List(ctx, ports.ListProductsFilter{
		CategoryID:    filter.CategoryID,
		SubcategoryID: filter.SubcategoryID,
	})
	if err != nil {
		return nil, err
	}

	table := &ports.ReportTable{
		Type:    ports.ReportProducts,
		Headers: []string{"id", "name", "price", "stock", "categoryId", "subcategoryId", "isbn"},
	}
	for _, p := range products {
		if !inDateRange(p.CreatedAt, filter.DateFrom, filter.DateTo) {
			continue
		}
		table.Rows = append(table.Rows, []any{p.ID, p.Name, p.Price, p.Stock, p.CategoryID, p.SubcategoryID, p.ISBN})
	}
	return table, nil
}

func (s *ReportService) buildUsers(ctx context.Context, filter ports.ReportFilter) (*ports.ReportTable, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	table := &ports.ReportTable{
		Type:    ports.ReportUsers,
		Headers: []string{"id", "name", "email", "roleId", "createdAt"},
	}
	for _, u := range users {
		if filter.RoleID > 0 && u.RoleID != filter.RoleID {
			continue
		}
		if !inDateRange(u.CreatedAt, filter.DateFrom, filter.DateTo) {
			continue
		}
		table.Rows = append(table.Rows, []any{u.ID, u.Name, u.Email, u.RoleID, u.CreatedAt.Format(time.RFC3339)})
	}
	return table, nil
}

// CSV renders the table comma-joined with every cell JSON-stringified, so
// delimiters and quotes inside values stay escaped. This mirrors the
// dashboard's historical CSV shape rather than RFC 4180.
func (s *ReportService) CSV(table *ports.ReportTable) []byte {
	var buf bytes.Buffer

	for i, h := range table.Headers {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(h)
	}
	buf.WriteByte('\n')

	for r, row := range table.Rows {
		if r > 0 {
			buf.WriteByte('\n')
		}
		for i, cell := range row {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(jsonCell(cell))
		}
	}
	return buf.Bytes()
}

func jsonCell(v any) []byte {
	if v == nil {
		return []byte(`""`)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return []byte(`""`)
	}
	return b
}

// Excel renders a single-sheet workbook with the headers on row one.
func (s *ReportService) Excel(table *ports.ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("closing workbook")
		}
	}()

	const sheet = "Sheet1"

	header := make([]any, len(table.Headers))
	for i, h := range table.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the export attachment name for the table.
func Filename(table *ports.ReportTable, ext string) string {
	return fmt.Sprintf("relatorio-%s.%s", table.Type, ext)
}

func inDateRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
