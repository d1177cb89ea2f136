package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name        string           `validate:"required,max=100"                                                    json:"name"`
	Description string           `validate:"required,max=1000"                                                   json:"description"`
	Price       *decimal.Decimal `validate:"required,gte=0"                                                      json:"price"`
	Category    string           `validate:"required,oneof=Electronics Clothing Books Home Beauty Sports Toys"  json:"category"`
	Stock       *int             `json:"stock"`
	Image       string           `validate:"omitempty,url"                                                       json:"image"`
	Featured    bool             `json:"featured"`
}

// UpdateProduct carries a partial field merge: nil pointers mean "keep the
// stored value", so an explicit zero price or stock still overwrites.
type UpdateProduct struct {
	Name        *string          `validate:"omitnil,max=100"                                                    json:"name"`
	Description *string          `validate:"omitnil,max=1000"                                                   json:"description"`
	Price       *decimal.Decimal `validate:"omitnil,gte=0"                                                      json:"price"`
	Category    *string          `validate:"omitnil,oneof=Electronics Clothing Books Home Beauty Sports Toys"  json:"category"`
	Stock       *int             `validate:"omitnil,gte=0"                                                      json:"stock"`
	Image       *string          `validate:"omitnil,url"                                                        json:"image"`
	Featured    *bool            `json:"featured"`
}

type FindProducts struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal `validate:"omitnil,gte=0"`
	MaxPrice *decimal.Decimal `validate:"omitnil,gte=0"`
	Page     int64
	Limit    int64
}
