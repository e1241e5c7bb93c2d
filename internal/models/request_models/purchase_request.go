package request_models

type CreatePurchaseRequest struct {
	PackageCode string `json:"package_code" binding:"required"`
}
