package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sitesmith/internal/models/db_models"
	"sitesmith/internal/models/request_models"
	"sitesmith/internal/services"
	"sitesmith/pkg/utils"
)

// BuilderController fronts the metered builder actions. Every request passes
// the gate before anything else happens; a denied request costs nothing.
type BuilderController struct {
	gateService services.GateServiceInterface
}

func NewBuilderController(gateService services.GateServiceInterface) *BuilderController {
	return &BuilderController{
		gateService: gateService,
	}
}

// PerformAction godoc
// @Summary Execute a metered builder action
// @Description Authorizes the action against the credit balance, debiting its cost
// @Tags Builder
// @Accept json
// @Produce json
// @Param request body request_models.BuilderActionRequest true "Action payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /builder/actions [post]
func (b *BuilderController) PerformAction(c *gin.Context) {

	var req request_models.BuilderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	result, err := b.gateService.Authorize(c.Request.Context(), accountID, db_models.ActionKind(req.Kind))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Action authorized")
}
