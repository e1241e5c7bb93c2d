package controllers

import (
	"github.com/gin-gonic/gin"

	"sitesmith/internal/services"
	"sitesmith/pkg/utils"
)

type PackageController struct {
	catalogService services.CatalogServiceInterface
}

func NewPackageController(catalogService services.CatalogServiceInterface) *PackageController {
	return &PackageController{
		catalogService: catalogService,
	}
}

// ListPackages godoc
// @Summary List purchasable credit packages
// @Description Fixed catalog of credit bundles with effective (base + bonus) credits
// @Tags Packages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /packages [get]
func (p *PackageController) ListPackages(c *gin.Context) {

	pkgs, err := p.catalogService.ListPackages(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pkgs, "Packages fetched successfully")
}
