package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineFeeIsPriceTimesQuantity(t *testing.T) {
	line := &Prescription{
		Quantity: 3,
		Medicine: Medicine{Price: decimal.RequireFromString("1250.50")},
	}
	assert.True(t, line.LineFee().Equal(decimal.RequireFromString("3751.50")))
}

func TestStockBands(t *testing.T) {
	cases := []struct {
		stock int
		band  string
	}{
		{0, "almost_empty"},
		{5, "almost_empty"},
		{6, "low"},
		{20, "low"},
		{21, "available"},
		{500, "available"},
	}

	for _, tc := range cases {
		m := &Medicine{Stock: tc.stock}
		assert.Equal(t, tc.band, m.StockBand(), "stock %d", tc.stock)
	}
}

func TestInvoiceTotalDerived(t *testing.T) {
	invoice := &Invoice{
		DoctorFee:   decimal.NewFromInt(150_000),
		MedicineFee: decimal.NewFromInt(2_500),
		RoomFee:     decimal.NewFromInt(750_000),
	}
	assert.True(t, invoice.Total().Equal(decimal.NewFromInt(902_500)))
}
