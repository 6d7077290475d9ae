package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manuflow/manuflow-api/internal/application/dto"
	"github.com/manuflow/manuflow-api/internal/application/reports"
)

// ReportHandler maneja dashboard y reportes (protegido).
type ReportHandler struct {
	dashboardUC *reports.DashboardUseCase
	productionUC *reports.ProductionReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboardUC *reports.DashboardUseCase, productionUC *reports.ProductionReportUseCase) *ReportHandler {
	return &ReportHandler{dashboardUC: dashboardUC, productionUC: productionUC}
}

// Dashboard godoc
// @Summary      Resumen del dashboard de operaciones
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboardUC.GetStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ProductionReport godoc
// @Summary      Reporte de producción por orden de fabricación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Fecha inicial (YYYY-MM-DD, inclusiva)"
// @Param        to    query  string  false  "Fecha final (YYYY-MM-DD, inclusiva)"
// @Success      200   {array}  dto.ProductionReportRow
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/production [get]
func (h *ReportHandler) ProductionReport(c *fiber.Ctx) error {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from: formato esperado YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to: formato esperado YYYY-MM-DD"})
	}
	out, err := h.productionUC.Generate(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
