package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dompetku/dompetku_backend/internal/apperrors"
	portssvc "github.com/dompetku/dompetku_backend/internal/core/ports/services"
	"github.com/dompetku/dompetku_backend/internal/dto"
	"github.com/dompetku/dompetku_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// recurringHandler handles HTTP requests related to recurring definitions.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

func newRecurringHandler(rs portssvc.RecurringSvcFacade) *recurringHandler {
	return &recurringHandler{recurringService: rs}
}

// registerRecurringRoutes registers routes related to recurring transactions.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := newRecurringHandler(recurringService)

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.PUT("/:id", h.updateRecurring)
		recurring.DELETE("/:id", h.deleteRecurring)
		recurring.POST("/process", h.processRecurring)
	}
}

// createRecurring godoc
// @Summary Create a recurring transaction definition
// @Tags recurring
// @Accept json
// @Produce json
// @Param recurring body dto.CreateRecurringRequest true "Recurring definition details"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Wallet not found"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	def, err := h.recurringService.CreateRecurring(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Wallet not found"})
		default:
			logger.Error("Failed to create recurring definition", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create recurring transaction"})
		}
		return
	}

	logger.Info("Recurring definition created", slog.String("recurring_id", def.RecurringID))
	c.JSON(http.StatusCreated, dto.ToRecurringResponse(def))
}

// listRecurring godoc
// @Summary List active recurring definitions
// @Tags recurring
// @Produce json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	defs, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring definitions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list recurring transactions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringResponses(defs))
}

// updateRecurring godoc
// @Summary Update a recurring definition
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Recurring definition ID"
// @Param recurring body dto.UpdateRecurringRequest true "Fields to update"
// @Success 200 {object} dto.RecurringResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring/{id} [put]
func (h *recurringHandler) updateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	def, err := h.recurringService.UpdateRecurring(c.Request.Context(), userID, recurringID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurring transaction not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update recurring definition", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update recurring transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringResponse(def))
}

// deleteRecurring godoc
// @Summary Deactivate a recurring definition
// @Description Marks the definition inactive; already-materialized
// transactions are untouched.
// @Tags recurring
// @Produce json
// @Param id path string true "Recurring definition ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring/{id} [delete]
func (h *recurringHandler) deleteRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.recurringService.DeactivateRecurring(c.Request.Context(), userID, recurringID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Recurring transaction not found"})
			return
		}
		logger.Error("Failed to deactivate recurring definition", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete recurring transaction"})
		return
	}

	logger.Info("Recurring definition deactivated", slog.String("recurring_id", recurringID))
	c.Status(http.StatusNoContent)
}

// processRecurring godoc
// @Summary Materialize due recurring definitions now
// @Description Runs the same pass the background scheduler runs: every active
// definition due at or before now is materialized and advanced one period.
// @Tags recurring
// @Produce json
// @Success 200 {object} dto.ProcessRecurringResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /recurring/process [post]
func (h *recurringHandler) processRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	processed, err := h.recurringService.ProcessDue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		logger.Error("Recurring processing finished with failures", slog.Int("processed", processed), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process recurring transactions"})
		return
	}

	logger.Info("Recurring processing finished", slog.Int("processed", processed))
	c.JSON(http.StatusOK, dto.ProcessRecurringResponse{Processed: processed})
}
