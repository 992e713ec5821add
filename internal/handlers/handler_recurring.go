package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/centavohq/centavo_app/internal/apperrors"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

// recurringHandler handles HTTP requests for recurring definitions.
type recurringHandler struct {
	recurringService portssvc.RecurringSvcFacade
}

// registerRecurringRoutes registers routes related to recurring definitions.
func registerRecurringRoutes(rg *gin.RouterGroup, recurringService portssvc.RecurringSvcFacade) {
	h := &recurringHandler{recurringService: recurringService}

	recurring := rg.Group("/recurring")
	{
		recurring.POST("", h.createRecurring)
		recurring.GET("", h.listRecurring)
		recurring.PUT("/:id", h.updateRecurring)
		recurring.POST("/run", h.runGenerator)
	}
}

// createRecurring godoc
// @Summary Create a recurring definition
// @Description Creates a definition the generator materializes on its cadence
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   recurring body dto.CreateRecurringRequest true "Definition details"
// @Success 201 {object} dto.RecurringResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create recurring definition"
// @Security BearerAuth
// @Router /recurring [post]
func (h *recurringHandler) createRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("account_id", req.AccountID))
	logger.Info("Received request to create recurring definition", slog.String("frequency", string(req.Frequency)))

	def, err := h.recurringService.CreateRecurring(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to create recurring definition", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recurring definition"})
		}
		return
	}

	logger.Info("Recurring definition created", slog.String("recurring_id", def.RecurringID))
	c.JSON(http.StatusCreated, dto.ToRecurringResponse(def))
}

// listRecurring godoc
// @Summary List recurring definitions
// @Description Retrieves the logged-in user's recurring definitions
// @Tags recurring
// @Produce  json
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list recurring definitions"
// @Security BearerAuth
// @Router /recurring [get]
func (h *recurringHandler) listRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	defs, err := h.recurringService.ListRecurring(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list recurring definitions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recurring definitions"})
		return
	}

	c.JSON(http.StatusOK, dto.ToRecurringResponses(defs))
}

// updateRecurring godoc
// @Summary Update a recurring definition
// @Description Edits a definition's mutable fields; isActive false pauses generation
// @Tags recurring
// @Accept  json
// @Produce  json
// @Param   id path string true "Recurring definition ID"
// @Param   recurring body dto.UpdateRecurringRequest true "Fields to update"
// @Success 200 {object} dto.RecurringResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recurring definition not found"
// @Failure 500 {object} map[string]string "Failed to update recurring definition"
// @Security BearerAuth
// @Router /recurring/{id} [put]
func (h *recurringHandler) updateRecurring(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	recurringID := c.Param("id")

	var req dto.UpdateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRecurring", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	def, err := h.recurringService.UpdateRecurring(c.Request.Context(), recurringID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recurring definition not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update recurring definition", slog.String("recurring_id", recurringID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recurring definition"})
		}
		return
	}

	logger.Info("Recurring definition updated", slog.String("recurring_id", recurringID))
	c.JSON(http.StatusOK, dto.ToRecurringResponse(def))
}

// runGenerator godoc
// @Summary Run the recurring generator
// @Description Materializes every due occurrence across all active definitions; duplicate-safe
// @Tags recurring
// @Produce  json
// @Success 200 {object} dto.GenerateResult
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to run recurring generator"
// @Security BearerAuth
// @Router /recurring/run [post]
func (h *recurringHandler) runGenerator(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Running recurring generator")

	result, err := h.recurringService.GenerateDue(c.Request.Context(), time.Now().UTC())
	if err != nil {
		logger.Error("Recurring generator run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run recurring generator"})
		return
	}

	logger.Info("Recurring generator finished", slog.Int("generated_count", result.GeneratedCount), slog.Int("error_count", len(result.Errors)))
	c.JSON(http.StatusOK, result)
}
