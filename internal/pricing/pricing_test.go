package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    int64
		qty      int64
		discount *models.Discount
		want     int64
	}{
		{name: "no discount", price: 25000, qty: 3, want: 75000},
		{
			name:     "capped by max discount",
			price:    50000,
			qty:      2,
			discount: &models.Discount{Percentage: 10, MinPurchase: 50000, MaxDiscount: 8000, Active: true},
			want:     92000,
		},
		{
			name:     "under cap",
			price:    10000,
			qty:      3,
			discount: &models.Discount{Percentage: 10, MinPurchase: 0, MaxDiscount: 50000, Active: true},
			want:     27000,
		},
		{
			name:     "inactive",
			price:    50000,
			qty:      2,
			discount: &models.Discount{Percentage: 10, MinPurchase: 0, MaxDiscount: 8000, Active: false},
			want:     100000,
		},
		{
			name:     "below min purchase",
			price:    10000,
			qty:      1,
			discount: &models.Discount{Percentage: 50, MinPurchase: 10001, MaxDiscount: 100000, Active: true},
			want:     10000,
		},
		{
			name:     "exactly min purchase",
			price:    10000,
			qty:      1,
			discount: &models.Discount{Percentage: 50, MinPurchase: 10000, MaxDiscount: 100000, Active: true},
			want:     5000,
		},
		{
			name:     "floors fractional discount",
			price:    999,
			qty:      1,
			discount: &models.Discount{Percentage: 15, MaxDiscount: 1000, Active: true},
			want:     850,
		},
		{
			name:     "full discount",
			price:    1200,
			qty:      2,
			discount: &models.Discount{Percentage: 100, MaxDiscount: 1 << 40, Active: true},
			want:     0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Line(tt.price, tt.qty, tt.discount))
		})
	}
}

func TestPriceLineUsesProductDiscount(t *testing.T) {
	p := &models.Product{
		Price:    100000,
		Discount: &models.Discount{Percentage: 10, MinPurchase: 50000, MaxDiscount: 8000, Active: true},
	}
	assert.Equal(t, int64(92000), PriceLine(p, 1))

	p.Discount = nil
	assert.Equal(t, int64(200000), PriceLine(p, 2))
}
