package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/monetra/internal/core/ports/services"
	"github.com/SscSPs/monetra/internal/dto"
	"github.com/SscSPs/monetra/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to wallets.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// RegisterWalletRoutes registers routes related to wallets.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	{
		wallets.POST("", h.createWallet)
		wallets.GET("", h.listWallets)
		wallets.GET("/:id", h.getWallet)
		wallets.PUT("/:id", h.updateWallet)
		wallets.DELETE("/:id", h.deleteWallet)
		wallets.POST("/:id/reconcile", h.reconcileWallet)
	}
}

// createWallet godoc
// @Summary Create a new wallet
// @Description Creates a wallet for the logged-in user. Credit limits are only accepted on credit cards.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   wallet body dto.CreateWalletRequest true "Wallet details"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Initial balance beyond the credit limit"
// @Failure 500 {object} map[string]string "Failed to create wallet"
// @Security BearerAuth
// @Router /wallets [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err, "request format")
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	logger.Info("Received request to create wallet", slog.String("wallet_name", req.Name), slog.String("wallet_type", string(req.WalletType)))

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create wallet")
		return
	}

	logger.Info("Wallet created successfully", slog.String("wallet_id", wallet.WalletID))
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// listWallets godoc
// @Summary List wallets
// @Description Retrieves every wallet owned by the logged-in user, ordered by name
// @Tags wallets
// @Produce  json
// @Success 200 {object} dto.ListWalletsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list wallets"
// @Security BearerAuth
// @Router /wallets [get]
func (h *walletHandler) listWallets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	wallets, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list wallets")
		return
	}

	logger.Debug("Wallets listed successfully", slog.Int("count", len(wallets)))
	c.JSON(http.StatusOK, dto.ListWalletsResponse{Wallets: dto.ToListWalletResponse(wallets)})
}

// getWallet godoc
// @Summary Get a wallet by ID
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	logger = logger.With(slog.String("wallet_id", walletID))
	wallet, err := h.walletService.GetWalletByID(c.Request.Context(), walletID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// updateWallet godoc
// @Summary Update a wallet
// @Description Updates the name, type, credit limit or currency of a wallet. The balance cannot be edited.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Param   wallet body dto.UpdateWalletRequest true "Fields to update"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 409 {object} map[string]string "Concurrent modification"
// @Failure 422 {object} map[string]string "Current balance beyond the new credit limit"
// @Security BearerAuth
// @Router /wallets/{id} [put]
func (h *walletHandler) updateWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")
	var req dto.UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindingError(c, logger, err, "request format")
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	logger = logger.With(slog.String("wallet_id", walletID))
	wallet, err := h.walletService.UpdateWallet(c.Request.Context(), walletID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update wallet")
		return
	}

	logger.Info("Wallet updated successfully")
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}

// deleteWallet godoc
// @Summary Delete a wallet
// @Description Deletes a wallet and every transaction that references it. Transfers are reversed on the other wallet.
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Success 200 {object} dto.DeleteWalletResult
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Failure 500 {object} map[string]string "Failed to delete wallet"
// @Security BearerAuth
// @Router /wallets/{id} [delete]
func (h *walletHandler) deleteWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	logger = logger.With(slog.String("wallet_id", walletID))
	result, err := h.walletService.DeleteWallet(c.Request.Context(), walletID, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete wallet")
		return
	}

	logger.Info("Wallet deleted successfully", slog.Int("deleted_transactions", result.DeletedTransactions))
	c.JSON(http.StatusOK, result)
}

// reconcileWallet godoc
// @Summary Reconcile a wallet balance
// @Description Recomputes the balance from the initial balance and transaction history. With repair=true a drifted balance is overwritten.
// @Tags wallets
// @Produce  json
// @Param   id path string true "Wallet ID"
// @Param   repair query bool false "Overwrite the stored balance" default(false)
// @Success 200 {object} domain.Reconciliation
// @Failure 403 {object} map[string]string "Wallet belongs to another user"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallets/{id}/reconcile [post]
func (h *walletHandler) reconcileWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	walletID := c.Param("id")
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		abortUnauthorized(c, logger)
		return
	}

	repair := false
	if raw := c.Query("repair"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithBindingError(c, logger, err, "query parameters")
			return
		}
		repair = parsed
	}

	logger = logger.With(slog.String("wallet_id", walletID), slog.Bool("repair", repair))
	rec, err := h.walletService.ReconcileWallet(c.Request.Context(), walletID, userID, repair)
	if err != nil {
		respondWithError(c, logger, err, "Failed to reconcile wallet")
		return
	}

	c.JSON(http.StatusOK, rec)
}
