package invoice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mdmuzammil18/invoice-app/internal/invoice"
)

func TestCalculateTotals(t *testing.T) {
	type testCase struct {
		name         string
		items        []invoice.Item
		wantSubtotal float64
		wantTotal    float64
	}

	tests := []testCase{
		{
			name:         "Empty",
			items:        nil,
			wantSubtotal: 0,
			wantTotal:    0,
		},
		{
			name: "SingleItem",
			items: []invoice.Item{
				{Quantity: 2, Price: 9.99},
			},
			wantSubtotal: 19.98,
			wantTotal:    19.98,
		},
		{
			name: "MultipleItems",
			items: []invoice.Item{
				{Quantity: 1, Price: 100},
				{Quantity: 3, Price: 25},
				{Quantity: 0.5, Price: 10},
			},
			wantSubtotal: 180,
			wantTotal:    180,
		},
		{
			name: "MalformedLinesContributeZero",
			items: []invoice.Item{
				{Quantity: math.NaN(), Price: 50},
				{Quantity: 2, Price: math.Inf(1)},
				{Quantity: 4, Price: 5},
			},
			wantSubtotal: 20,
			wantTotal:    20,
		},
		{
			name: "ZeroQuantity",
			items: []invoice.Item{
				{Quantity: 0, Price: 99},
			},
			wantSubtotal: 0,
			wantTotal:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoice.CalculateTotals(tt.items)

			assert.InDelta(t, tt.wantSubtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.Total, 1e-9)
		})
	}
}

func TestCalculateTotals_TotalMirrorsSubtotal(t *testing.T) {
	items := []invoice.Item{
		{Quantity: 7, Price: 13.13},
		{Quantity: 2, Price: 0.01},
	}

	got := invoice.CalculateTotals(items)
	assert.Equal(t, got.Subtotal, got.Total)
}
