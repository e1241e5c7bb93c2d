package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sitesmith/internal/models/response_models"
	"sitesmith/internal/services"
	"sitesmith/pkg/utils"
)

type CreditController struct {
	creditService   services.CreditServiceInterface
	notifierService services.NotifierServiceInterface
}

func NewCreditController(
	creditService services.CreditServiceInterface,
	notifierService services.NotifierServiceInterface,
) *CreditController {
	return &CreditController{
		creditService:   creditService,
		notifierService: notifierService,
	}
}

func authAccountID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "user_id is invalid")
		return uuid.Nil, false
	}
	return id, true
}

// GetBalance godoc
// @Summary Current credit balance
// @Description Spendable credits with the non-expired lots behind them
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/balance [get]
func (ct *CreditController) GetBalance(c *gin.Context) {
	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	snap, err := ct.creditService.CurrentBalance(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.BalanceResponse{
		AccountID: accountID,
		Remaining: snap.Remaining,
	}
	for i := range snap.Lots {
		resp.Lots = append(resp.Lots, response_models.CreditLotView{
			ID:        snap.Lots[i].ID,
			Amount:    snap.Lots[i].Amount,
			Remaining: snap.Lots[i].Remaining,
			GrantedAt: snap.Lots[i].GrantedAt,
			ExpiresAt: snap.Lots[i].ExpiresAt,
		})
	}

	utils.RespondSuccess(c, resp, "Balance fetched successfully")
}

// GetExpiring godoc
// @Summary Lots expiring soon
// @Description Still-valid lots expiring within ?days (defaults to the warning window)
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/expiring [get]
func (ct *CreditController) GetExpiring(c *gin.Context) {
	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.Query("days"))

	lots, err := ct.creditService.ExpiringWithin(c.Request.Context(), accountID, days)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp := response_models.ExpiringLotsResponse{
		AccountID:  accountID,
		WindowDays: days,
	}
	for i := range lots {
		resp.Lots = append(resp.Lots, response_models.CreditLotView{
			ID:        lots[i].ID,
			Amount:    lots[i].Amount,
			Remaining: lots[i].Remaining,
			GrantedAt: lots[i].GrantedAt,
			ExpiresAt: lots[i].ExpiresAt,
		})
	}

	utils.RespondSuccess(c, resp, "Expiring lots fetched successfully")
}

// GetHistory godoc
// @Summary Metered action history
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/history [get]
func (ct *CreditController) GetHistory(c *gin.Context) {
	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	records, err := ct.creditService.UsageHistory(c.Request.Context(), accountID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	views := make([]response_models.UsageRecordView, 0, len(records))
	for i := range records {
		views = append(views, response_models.UsageRecordView{
			ID:           records[i].ID,
			Kind:         string(records[i].Kind),
			Cost:         records[i].Cost,
			BalanceAfter: records[i].BalanceAfter,
			CreatedAt:    records[i].CreatedAt,
		})
	}

	utils.RespondSuccess(c, views, "Usage history fetched successfully")
}

// NotifyExpiring godoc
// @Summary Send the expiring-credits warning mail
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/notify-expiring [post]
func (ct *CreditController) NotifyExpiring(c *gin.Context) {
	accountID, ok := authAccountID(c)
	if !ok {
		return
	}

	count, err := ct.notifierService.NotifyExpiringCredits(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"lots_flagged": count}, "Expiry notification processed")
}
