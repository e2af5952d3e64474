package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/painelfacil/painel-api/internal/api/metrics"
	"github.com/painelfacil/painel-api/internal/core/ports"
	"github.com/painelfacil/painel-api/internal/core/service"
)

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{service: reports}
}

type reportResponse struct {
	Type    string   `json:"type"`
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// Build renders the filtered report table as JSON for the preview grid.
//
// @Summary      Build a report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        type      query  string  true   "Report type: pedidos, produtos or usuarios"
// @Param        from      query  string  false  "Start date (RFC 3339)"
// @Param        to        query  string  false  "End date (RFC 3339)"
// @Param        status    query  string  false  "Order status filter"
// @Param        category  query  int     false  "Category id filter"
// @Param        role      query  int     false  "Role id filter"
// @Success      200  {object}  reportResponse
// @Failure      400  {object}  map[string]string
// @Router       /reports [get]
func (h *ReportHandler) Build(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	filter, err := reportFilter(c)
	if err != nil {
		return err
	}

	table, err := h.service.Build(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reportResponse{Type: table.Type, Headers: table.Headers, Rows: table.Rows})
}

// Export streams the report as a CSV or XLSX attachment named
// relatorio-<type>.<ext>.
//
// @Summary      Export a report
// @Tags         reports
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        type    query  string  true   "Report type: pedidos, produtos or usuarios"
// @Param        format  query  string  true   "csv or xlsx"
// @Param        from    query  string  false  "Start date (RFC 3339)"
// @Param        to      query  string  false  "End date (RFC 3339)"
// @Param        status  query  string  false  "Order status filter"
// @Success      200  {file}    file
// @Failure      400  {object}  map[string]string
// @Router       /reports/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	filter, err := reportFilter(c)
	if err != nil {
		return err
	}

	table, err := h.service.Build(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	format := c.QueryParam("format")
	switch format {
	case "", "csv":
		metrics.ExportsTotal.WithLabelValues("csv", table.Type).Inc()
		attachment(c, service.Filename(table, "csv"))
		return c.Blob(http.StatusOK, "text/csv; charset=utf-8", h.service.CSV(table))
	case "xlsx":
		data, err := h.service.Excel(table)
		if err != nil {
			return err
		}
		metrics.ExportsTotal.WithLabelValues("xlsx", table.Type).Inc()
		attachment(c, service.Filename(table, "xlsx"))
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown export format")
	}
}

func attachment(c echo.Context, filename string) {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, filename))
}

func reportFilter(c echo.Context) (ports.ReportFilter, error) {
	filter := ports.ReportFilter{
		Type:          c.QueryParam("type"),
		Status:        c.QueryParam("status"),
		CategoryID:    queryInt(c, "category"),
		SubcategoryID: queryInt(c, "subcategory"),
		RoleID:        queryInt(c, "role"),
	}

	var err error
	if filter.DateFrom, err = queryTime(c, "from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = queryTime(c, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// queryTime parses an optional date parameter, accepting RFC 3339 or plain
// yyyy-mm-dd.
func queryTime(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" date")
	}
	return t, nil
}
