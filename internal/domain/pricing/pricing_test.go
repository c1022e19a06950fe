package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"prostore/internal/domain/entity"
)

func item(price string, qty int) entity.CartItem {
	return entity.CartItem{
		ProductID: uuid.New(),
		Price:     decimal.RequireFromString(price),
		Qty:       qty,
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		items    []entity.CartItem
		expected Totals
	}{
		{
			name:  "empty cart",
			items: nil,
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("0"),
				ShippingPrice: decimal.RequireFromString("10"),
				TaxPrice:      decimal.RequireFromString("0"),
				TotalPrice:    decimal.RequireFromString("10"),
			},
		},
		{
			name:  "single item below free shipping",
			items: []entity.CartItem{item("59.99", 1)},
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("59.99"),
				ShippingPrice: decimal.RequireFromString("10"),
				TaxPrice:      decimal.RequireFromString("9.00"),
				TotalPrice:    decimal.RequireFromString("78.99"),
			},
		},
		{
			name:  "subtotal exactly at the threshold still pays shipping",
			items: []entity.CartItem{item("50.00", 2)},
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("100.00"),
				ShippingPrice: decimal.RequireFromString("10"),
				TaxPrice:      decimal.RequireFromString("15.00"),
				TotalPrice:    decimal.RequireFromString("125.00"),
			},
		},
		{
			name:  "one cent above the threshold ships free",
			items: []entity.CartItem{item("100.01", 1)},
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("100.01"),
				ShippingPrice: decimal.RequireFromString("0"),
				TaxPrice:      decimal.RequireFromString("15.00"),
				TotalPrice:    decimal.RequireFromString("115.01"),
			},
		},
		{
			name:  "multiple lines with quantities",
			items: []entity.CartItem{item("24.99", 2), item("9.95", 3)},
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("79.83"),
				ShippingPrice: decimal.RequireFromString("10"),
				TaxPrice:      decimal.RequireFromString("11.97"),
				TotalPrice:    decimal.RequireFromString("101.80"),
			},
		},
		{
			name:  "tax rounds half up",
			items: []entity.CartItem{item("33.33", 1)},
			expected: Totals{
				ItemsPrice:    decimal.RequireFromString("33.33"),
				ShippingPrice: decimal.RequireFromString("10"),
				TaxPrice:      decimal.RequireFromString("5.00"),
				TotalPrice:    decimal.RequireFromString("48.33"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Calculate(tt.items)

			assert.True(t, tt.expected.ItemsPrice.Equal(got.ItemsPrice), "items price: want %s got %s", tt.expected.ItemsPrice, got.ItemsPrice)
			assert.True(t, tt.expected.ShippingPrice.Equal(got.ShippingPrice), "shipping price: want %s got %s", tt.expected.ShippingPrice, got.ShippingPrice)
			assert.True(t, tt.expected.TaxPrice.Equal(got.TaxPrice), "tax price: want %s got %s", tt.expected.TaxPrice, got.TaxPrice)
			assert.True(t, tt.expected.TotalPrice.Equal(got.TotalPrice), "total price: want %s got %s", tt.expected.TotalPrice, got.TotalPrice)
		})
	}
}

func TestCalculateTotalMatchesComponents(t *testing.T) {
	t.Parallel()

	got := Calculate([]entity.CartItem{item("12.34", 5), item("0.99", 7)})

	sum := got.ItemsPrice.Add(got.ShippingPrice).Add(got.TaxPrice)
	assert.True(t, got.TotalPrice.Equal(sum), "total %s must equal component sum %s", got.TotalPrice, sum)
}
