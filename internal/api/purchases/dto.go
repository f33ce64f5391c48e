package purchases

type CreatePurchaseRequest struct {
	ArtworkID       string `json:"artwork_id" binding:"required,uuid"`
	BuyerName       string `json:"buyer_name" binding:"omitempty,max=120"`
	BuyerEmail      string `json:"buyer_email" binding:"omitempty,email"`
	BuyerPhone      string `json:"buyer_phone" binding:"omitempty,max=20"`
	ShippingAddress string `json:"shipping_address" binding:"required,min=10"`
	Message         string `json:"message" binding:"omitempty,max=1000"`
}

type StatusRequest struct {
	Action string `json:"action" binding:"required"`
}
