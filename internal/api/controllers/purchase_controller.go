package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitesmith/internal/models/request_models"
	"sitesmith/internal/services"
	"sitesmith/pkg/utils"
)

type PurchaseController struct {
	purchaseService services.PurchaseServiceInterface
}

func NewPurchaseController(purchaseService services.PurchaseServiceInterface) *PurchaseController {
	return &PurchaseController{
		purchaseService: purchaseService,
	}
}

// CreatePurchase godoc
// @Summary Purchase a credit package
// @Description Records the sale and grants the package's credits as one lot
// @Tags Purchases
// @Accept json
// @Produce json
// @Param request body request_models.CreatePurchaseRequest true "Purchase payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /purchases [post]
func (p *PurchaseController) CreatePurchase(c *gin.Context) {

	var req request_models.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	result, err := p.purchaseService.PurchasePackage(c.Request.Context(), accountID, req.PackageCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Purchase completed successfully")
}
