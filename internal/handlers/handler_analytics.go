package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dompetku/dompetku_backend/internal/core/domain"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler serves the read-only reporting views.
type analyticsHandler struct {
	reportingService portssvc.ReportingSvcFacade
	userService      portssvc.UserSvcFacade
}

func newAnalyticsHandler(rs portssvc.ReportingSvcFacade, us portssvc.UserSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		reportingService: rs,
		userService:      us,
	}
}

// registerAnalyticsRoutes registers the reporting routes.
func registerAnalyticsRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, userService portssvc.UserSvcFacade) {
	h := newAnalyticsHandler(reportingService, userService)

	analytics := rg.Group("/analytics")
	{
		analytics.GET("/dashboard", h.getDashboard)
		analytics.GET("/cashflow", h.getCashFlow)
		analytics.GET("/category-report", h.getCategoryReport)
	}
}

// getDashboard godoc
// @Summary Get the dashboard snapshot
// @Description Returns total balance, current and previous month income and
// expense, category breakdown, recent transactions, net worth and an
// end-of-month balance forecast.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/dashboard [get]
func (h *analyticsHandler) getDashboard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), userID, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to build dashboard", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard, privacyModeFor(c.Request.Context(), h.userService, userID)))
}

// getCashFlow godoc
// @Summary Get the cash-flow report
// @Description Buckets income and expense by day, week or month over the
// requested range. Transfers are excluded. Defaults to the last 30 days.
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param period query string false "Bucketing (daily, weekly, monthly)" default(daily)
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/cashflow [get]
func (h *analyticsHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.CashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	granularity := domain.CashFlowGranularity(params.Period)
	switch granularity {
	case domain.CashFlowDaily, domain.CashFlowWeekly, domain.CashFlowMonthly:
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid period: must be daily, weekly or monthly"})
		return
	}

	start, end := reportRange(params.StartDate, params.EndDate)
	entries, err := h.reportingService.GetCashFlow(c.Request.Context(), userID, start, end, granularity)
	if err != nil {
		logger.Error("Failed to build cash-flow report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build cash-flow report"})
		return
	}

	c.JSON(http.StatusOK, dto.CashFlowResponse{CashFlow: entries})
}

// getCategoryReport godoc
// @Summary Get the per-category expense report
// @Description Returns expense totals per category with their share of the
// grand total. Defaults to the last 30 days.
// @Tags analytics
// @Produce json
// @Param startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics/category-report [get]
func (h *analyticsHandler) getCategoryReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.CategoryReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	start, end := reportRange(params.StartDate, params.EndDate)
	totals, err := h.reportingService.GetCategoryReport(c.Request.Context(), userID, start, end)
	if err != nil {
		logger.Error("Failed to build category report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build category report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryReportResponse(totals))
}

// reportRange resolves the requested date range, defaulting to the 30 days
// ending now. The end date is extended to the end of its day so same-day
// transactions are included.
func reportRange(start, end *time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	resolvedEnd := now
	if end != nil {
		resolvedEnd = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	resolvedStart := resolvedEnd.AddDate(0, 0, -30)
	if start != nil {
		resolvedStart = *start
	}
	return resolvedStart, resolvedEnd
}
