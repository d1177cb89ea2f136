package request

type AddCartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"  validate:"omitnil,gte=1"`
}

type RemoveCartItem struct {
	ProductID string `json:"productId" validate:"required"`
}

type UpdateCartItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"  validate:"required,gte=1"`
}
