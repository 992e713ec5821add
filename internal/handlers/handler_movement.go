package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/centavohq/centavo_app/internal/apperrors"
	portssvc "github.com/centavohq/centavo_app/internal/core/ports/services"
	"github.com/centavohq/centavo_app/internal/dto"
	"github.com/centavohq/centavo_app/internal/middleware"
)

// movementHandler handles HTTP requests for atomic ledger movements.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

// registerMovementRoutes registers routes related to movements.
func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := &movementHandler{movementService: movementService}

	movements := rg.Group("/movements")
	{
		movements.POST("/transfer", h.transfer)
		movements.POST("/payment", h.payment)
		movements.POST("/validate", h.validate)
		movements.GET("/:id", h.getMovement)
		movements.POST("/:id/reverse", h.reverse)
	}
}

// respondMovementError maps coordinator errors onto HTTP statuses. An
// insufficient-funds rejection is 422 with the shortfall figures so the
// client can render them.
func respondMovementError(c *gin.Context, logger *slog.Logger, err error) {
	var insufficientErr *apperrors.InsufficientFundsError
	switch {
	case errors.As(err, &insufficientErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":     "insufficient funds",
			"available": insufficientErr.Available,
			"shortfall": insufficientErr.Shortfall,
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Movement operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process movement"})
	}
}

// transfer godoc
// @Summary Transfer funds between accounts
// @Description Atomically moves funds between two accounts of the user
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Conflicting movement in flight"
// @Failure 422 {object} map[string]interface{} "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to process movement"
// @Security BearerAuth
// @Router /movements/transfer [post]
func (h *movementHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("from_account_id", req.FromAccountID), slog.String("to_account_id", req.ToAccountID))
	logger.Info("Received transfer request", slog.Int64("amount", req.Amount))

	resp, err := h.movementService.ExecuteTransfer(c.Request.Context(), req, userID)
	if err != nil {
		respondMovementError(c, logger, err)
		return
	}

	logger.Info("Transfer committed", slog.String("movement_id", resp.MovementID))
	c.JSON(http.StatusCreated, resp)
}

// payment godoc
// @Summary Pay a credit card bill
// @Description Atomically pays a credit account's bill from a bank account
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   payment body dto.PaymentRequest true "Payment details"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Conflicting movement in flight"
// @Failure 422 {object} map[string]interface{} "Insufficient funds"
// @Failure 500 {object} map[string]string "Failed to process movement"
// @Security BearerAuth
// @Router /movements/payment [post]
func (h *movementHandler) payment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Payment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("credit_account_id", req.CreditAccountID), slog.String("bank_account_id", req.BankAccountID))
	logger.Info("Received bill payment request", slog.Int64("amount", req.Amount))

	resp, err := h.movementService.ExecutePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondMovementError(c, logger, err)
		return
	}

	logger.Info("Payment committed", slog.String("movement_id", resp.MovementID))
	c.JSON(http.StatusCreated, resp)
}

// validate godoc
// @Summary Pre-validate a movement
// @Description Advisory affordability check; the authoritative check reruns at commit
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   check body dto.ValidateMovementRequest true "Movement to check"
// @Success 200 {object} dto.ValidateMovementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to validate movement"
// @Security BearerAuth
// @Router /movements/validate [post]
func (h *movementHandler) validate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ValidateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.movementService.ValidateMovement(c.Request.Context(), req, userID)
	if err != nil {
		respondMovementError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getMovement godoc
// @Summary Get a movement by ID
// @Description Retrieves a movement with all its ledger entries
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Success 200 {object} dto.MovementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 500 {object} map[string]string "Failed to retrieve movement"
// @Security BearerAuth
// @Router /movements/{id} [get]
func (h *movementHandler) getMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	if _, ok := middleware.GetUserIDFromContext(c); !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.movementService.GetMovement(c.Request.Context(), movementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Movement not found"})
		} else {
			logger.Error("Failed to get movement", slog.String("movement_id", movementID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve movement"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// reverse godoc
// @Summary Reverse a movement
// @Description Commits the exact inverse of a confirmed movement; the original rows are preserved
// @Tags movements
// @Produce  json
// @Param   id path string true "Movement ID"
// @Success 201 {object} dto.MovementResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Movement not found"
// @Failure 409 {object} map[string]string "Movement already reversed or not reversible"
// @Failure 500 {object} map[string]string "Failed to reverse movement"
// @Security BearerAuth
// @Router /movements/{id}/reverse [post]
func (h *movementHandler) reverse(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	movementID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("movement_id", movementID))
	logger.Info("Received reversal request")

	resp, err := h.movementService.ReverseMovement(c.Request.Context(), movementID, userID)
	if err != nil {
		respondMovementError(c, logger, err)
		return
	}

	logger.Info("Reversal committed", slog.String("reversal_movement_id", resp.MovementID))
	c.JSON(http.StatusCreated, resp)
}
