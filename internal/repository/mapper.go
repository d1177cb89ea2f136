package repository

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	cartResponse "github.com/danisworo/storefront/cart/pkg/response"
	productResponse "github.com/danisworo/storefront/product/pkg/response"
)

// NumericFromDecimal converts a decimal price into its BSON Decimal128
// representation for storage.
func NumericFromDecimal(d decimal.Decimal) primitive.Decimal128 {
	numeric, ok := primitive.ParseDecimal128FromBigInt(d.Coefficient(), int(d.Exponent()))
	if !ok {
		return primitive.NewDecimal128(0, 0)
	}
	return numeric
}

func DecimalFromNumeric(n primitive.Decimal128) decimal.Decimal {
	coefficient, exp, err := n.BigInt()
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(coefficient, int32(exp))
}

func (p Product) Response() productResponse.Product {
	return productResponse.Product{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Price:       DecimalFromNumeric(p.Price),
		Category:    p.Category,
		Stock:       p.Stock,
		Image:       p.Image,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// Response joins the cart's line items against the given products, resolving
// each item to the product's current name, price, image and stock. Items
// whose product no longer resolves are dropped from the view.
func (ct Cart) Response(products map[primitive.ObjectID]Product) cartResponse.Cart {
	items := []cartResponse.CartItem{}
	for _, item := range ct.Items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		items = append(items, cartResponse.CartItem{
			ProductID: item.ProductID.Hex(),
			Name:      product.Name,
			Price:     DecimalFromNumeric(product.Price),
			Image:     product.Image,
			Stock:     product.Stock,
			Quantity:  item.Quantity,
		})
	}
	return cartResponse.Cart{
		ID:        ct.ID.Hex(),
		UserID:    ct.UserID,
		Items:     items,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}
