package handler

import (
	"net/http"

	coreport "github.com/sportxbet/tipstore/internal/domain/port/core"
	catalogUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/catalog"
	settlementUseCase "github.com/sportxbet/tipstore/internal/domain/usecase/settlement"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/dto"
	"github.com/sportxbet/tipstore/internal/infrastructure/adapter/api/middleware"
	"github.com/sportxbet/tipstore/internal/infrastructure/metrics"
	"github.com/gin-gonic/gin"
)

// CatalogHandler handles listing browsing, admin management and purchases
type CatalogHandler struct {
	catalogService    *catalogUseCase.Service
	settlementService *settlementUseCase.Service
	timeProvider      coreport.TimeProvider
	metrics           *metrics.Metrics
	logger            coreport.Logger
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(
	catalogService *catalogUseCase.Service,
	settlementService *settlementUseCase.Service,
	timeProvider coreport.TimeProvider,
	m *metrics.Metrics,
	logger coreport.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		catalogService:    catalogService,
		settlementService: settlementService,
		timeProvider:      timeProvider,
		metrics:           m,
		logger:            logger,
	}
}

// Active handles the GET /recommendations endpoint: the public storefront
// view of purchasable listings, premium content withheld
func (h *CatalogHandler) Active(c *gin.Context) {
	recs, err := h.catalogService.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.timeProvider.Now()
	resp := make([]dto.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, dto.NewRecommendationResponse(rec, now))
	}
	c.JSON(http.StatusOK, resp)
}

// List handles the GET /recommendations/all endpoint. Admin only; includes
// expired and completed listings with their premium content.
func (h *CatalogHandler) List(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	recs, err := h.catalogService.List(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.timeProvider.Now()
	resp := make([]dto.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, dto.NewAdminRecommendationResponse(rec, now))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles the POST /recommendations endpoint. Admin only.
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	identity := middleware.IdentityFrom(c)
	rec, err := h.catalogService.Create(c.Request.Context(), identity, catalogUseCase.CreateInput{
		Title:        req.Title,
		Price:        req.Price,
		Odds:         req.Odds,
		Confidence:   req.Confidence,
		BettingSites: req.BettingSites,
		ExpiresAt:    req.ExpiresAt,
		MaxPurchases: req.MaxPurchases,
		Urgent:       req.Urgent,
		Category:     req.Category,
		Content:      req.Content,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAdminRecommendationResponse(rec, h.timeProvider.Now()))
}

// Update handles the PATCH /recommendations/:id endpoint. Admin only.
func (h *CatalogHandler) Update(c *gin.Context) {
	var req dto.UpdateRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	identity := middleware.IdentityFrom(c)
	rec, err := h.catalogService.Update(c.Request.Context(), identity, c.Param("id"), catalogUseCase.RecommendationPatch{
		Title:            req.Title,
		Price:            req.Price,
		Odds:             req.Odds,
		Confidence:       req.Confidence,
		BettingSites:     req.BettingSites,
		ExpiresAt:        req.ExpiresAt,
		MaxPurchases:     req.MaxPurchases,
		CurrentPurchases: req.CurrentPurchases,
		Urgent:           req.Urgent,
		Category:         req.Category,
		Content:          req.Content,
		Status:           req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminRecommendationResponse(rec, h.timeProvider.Now()))
}

// Delete handles the DELETE /recommendations/:id endpoint. Admin only.
func (h *CatalogHandler) Delete(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	if err := h.catalogService.Delete(c.Request.Context(), identity, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkResult handles the POST /recommendations/:id/result endpoint. Admin only.
func (h *CatalogHandler) MarkResult(c *gin.Context) {
	var req dto.MarkResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	identity := middleware.IdentityFrom(c)
	rec, err := h.catalogService.MarkResult(c.Request.Context(), identity, c.Param("id"), req.Result)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAdminRecommendationResponse(rec, h.timeProvider.Now()))
}

// Purchase handles the POST /recommendations/:id/purchase endpoint
func (h *CatalogHandler) Purchase(c *gin.Context) {
	identity := middleware.IdentityFrom(c)

	receipt, err := h.settlementService.Purchase(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		if h.metrics != nil {
			h.metrics.SettlementsFailed.WithLabelValues(failureReason(err)).Inc()
		}
		respondError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.PurchasesTotal.Inc()
	}
	c.JSON(http.StatusOK, dto.PurchaseReceiptResponse{
		Purchase:      dto.NewPurchaseResponse(receipt.Purchase),
		Transaction:   dto.NewTransactionResponse(receipt.Transaction),
		ResultBalance: receipt.ResultBalance,
	})
}
