package handler

import (
	"net/http"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	ledgerUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/ledger"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/middleware"
	"github.com/sportxbet/tipstore/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	ledgerService *ledgerUseCase.Service
	metrics       *metrics.Metrics
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(ledgerService *ledgerUseCase.Service, m *metrics.Metrics, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		ledgerService: ledgerService,
		metrics:       m,
		logger:        logger,
	}
}

// Deposit handles the POST /wallet/deposit endpoint
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	identity := middleware.IdentityFrom(c)
	user, err := h.ledgerService.Deposit(c.Request.Context(), identity, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.DepositsTotal.Inc()
	}
	c.JSON(http.StatusOK, dto.WalletResponse{
		UserID:  user.ID,
		Balance: user.FormattedBalance(),
	})
}

// Balance handles the GET /wallet endpoint
func (h *WalletHandler) Balance(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	user, err := h.ledgerService.Balance(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WalletResponse{
		UserID:  user.ID,
		Balance: user.FormattedBalance(),
	})
}

// Transactions handles the GET /wallet/transactions endpoint
func (h *WalletHandler) Transactions(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	transactions, err := h.ledgerService.Transactions(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		resp = append(resp, dto.NewTransactionResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// Purchases handles the GET /purchases endpoint
func (h *WalletHandler) Purchases(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	purchases, err := h.ledgerService.Purchases(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		resp = append(resp, dto.NewPurchaseResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}
