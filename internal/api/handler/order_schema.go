package handler

type orderItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"      validate:"required"`
	Quantity  int     `json:"quantity"  validate:"required,gt=0"`
	Price     float64 `json:"price"     validate:"required,gt=0"`
}

type createOrderRequest struct {
	Items       []orderItemRequest `json:"items"       validate:"required,min=1,dive"`
	TotalAmount float64            `json:"totalAmount" validate:"required,gt=0"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=created in_progress completed cancelled"`
}
