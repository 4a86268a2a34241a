package http

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/currency"
)

const productCodeLength = 10

// ProductRequest is the request body for create and update
type ProductRequest struct {
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	PriceEur    *decimal.Decimal `json:"priceEur"`
	Description string           `json:"description"`
	IsAvailable bool             `json:"isAvailable"`
}

// validate returns one message per violated constraint. An empty slice
// means the request is valid.
func (r *ProductRequest) validate() []string {
	var violations []string
	if len(r.Code) != productCodeLength {
		violations = append(violations, fmt.Sprintf("attribute code must be exactly %d characters", productCodeLength))
	}
	if r.Name == "" {
		violations = append(violations, "attribute name must not be blank")
	}
	if r.PriceEur == nil {
		violations = append(violations, "attribute priceEur is required")
	} else if r.PriceEur.IsNegative() {
		violations = append(violations, "attribute priceEur must be positive number")
	}
	return violations
}

// ProductResponse is a product as exposed over HTTP, with the computed
// USD price.
type ProductResponse struct {
	ID          uint            `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	PriceEur    decimal.Decimal `json:"priceEur"`
	PriceUsd    decimal.Decimal `json:"priceUsd"`
	Description string          `json:"description"`
	IsAvailable bool            `json:"isAvailable"`
}

// ProductsResponse wraps the product list
type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// Problem is the structured error body (RFC 7807 shape)
type Problem struct {
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

func toProductResponse(ctx context.Context, converter *currency.Converter, product *domain.Product) (ProductResponse, error) {
	priceUsd, err := converter.ToUSD(ctx, product.PriceEur)
	if err != nil {
		return ProductResponse{}, err
	}
	return ProductResponse{
		ID:          product.ID,
		Code:        product.Code,
		Name:        product.Name,
		PriceEur:    product.PriceEur,
		PriceUsd:    priceUsd,
		Description: product.Description,
		IsAvailable: product.IsAvailable,
	}, nil
}

func toProductsResponse(ctx context.Context, converter *currency.Converter, products []domain.Product) (ProductsResponse, error) {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		response, err := toProductResponse(ctx, converter, &products[i])
		if err != nil {
			return ProductsResponse{}, err
		}
		responses = append(responses, response)
	}
	return ProductsResponse{Products: responses}, nil
}
