package request

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/danisworo/storefront/internal/common/validate"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

func intPtr(i int) *int {
	return &i
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   Product
		wantErr bool
	}{
		{
			name: "given complete product should pass",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(75)),
				Category:    "Electronics",
				Stock:       intPtr(10),
			},
			wantErr: false,
		},
		{
			name: "given missing name should fail",
			input: Product{
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(75)),
				Category:    "Electronics",
			},
			wantErr: true,
		},
		{
			name: "given missing price should fail",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Category:    "Electronics",
			},
			wantErr: true,
		},
		{
			name: "given negative price should fail",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(-1)),
				Category:    "Electronics",
			},
			wantErr: true,
		},
		{
			name: "given unknown category should fail",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(75)),
				Category:    "Gadgets",
			},
			wantErr: true,
		},
		{
			name: "given malformed image url should fail",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(75)),
				Category:    "Electronics",
				Image:       "not a url",
			},
			wantErr: true,
		},
		{
			name: "given missing stock should pass",
			input: Product{
				Name:        "Mechanical Keyboard",
				Description: "87 key hot swappable",
				Price:       decimalPtr(decimal.NewFromInt(75)),
				Category:    "Books",
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.New().Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUpdateProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   UpdateProduct
		wantErr bool
	}{
		{
			name:    "given empty update should pass",
			input:   UpdateProduct{},
			wantErr: false,
		},
		{
			name: "given explicit zero stock should pass",
			input: UpdateProduct{
				Stock: intPtr(0),
			},
			wantErr: false,
		},
		{
			name: "given negative stock should fail",
			input: UpdateProduct{
				Stock: intPtr(-1),
			},
			wantErr: true,
		},
		{
			name: "given negative price should fail",
			input: UpdateProduct{
				Price: decimalPtr(decimal.NewFromInt(-10)),
			},
			wantErr: true,
		},
		{
			name: "given unknown category should fail",
			input: UpdateProduct{
				Category: stringPtr("Gadgets"),
			},
			wantErr: true,
		},
		{
			name: "given known category should pass",
			input: UpdateProduct{
				Category: stringPtr("Toys"),
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.New().Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func stringPtr(s string) *string {
	return &s
}
