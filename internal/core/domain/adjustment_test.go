package domain_test

import (
	"testing"

	"github.com/inventra/inventra_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdjustmentType_Apply(t *testing.T) {
	tests := []struct {
		name       string
		adjType    domain.AdjustmentType
		system     decimal.Decimal
		quantity   decimal.Decimal
		wantDelta  decimal.Decimal
		wantActual decimal.Decimal
	}{
		{
			name:       "relative positive adds to system",
			adjType:    domain.AdjustmentRelative,
			system:     decimal.NewFromInt(60),
			quantity:   decimal.NewFromInt(25),
			wantDelta:  decimal.NewFromInt(25),
			wantActual: decimal.NewFromInt(85),
		},
		{
			name:       "relative negative removes from system",
			adjType:    domain.AdjustmentRelative,
			system:     decimal.NewFromInt(50),
			quantity:   decimal.NewFromInt(-15),
			wantDelta:  decimal.NewFromInt(-15),
			wantActual: decimal.NewFromInt(35),
		},
		{
			name:       "absolute above system derives positive delta",
			adjType:    domain.AdjustmentAbsolute,
			system:     decimal.NewFromInt(80),
			quantity:   decimal.NewFromInt(200),
			wantDelta:  decimal.NewFromInt(120),
			wantActual: decimal.NewFromInt(200),
		},
		{
			name:       "absolute below system derives negative delta",
			adjType:    domain.AdjustmentAbsolute,
			system:     decimal.NewFromInt(75),
			quantity:   decimal.NewFromInt(30),
			wantDelta:  decimal.NewFromInt(-45),
			wantActual: decimal.NewFromInt(30),
		},
		{
			name:       "absolute may land on a negative target",
			adjType:    domain.AdjustmentAbsolute,
			system:     decimal.NewFromInt(10),
			quantity:   decimal.NewFromInt(-5),
			wantDelta:  decimal.NewFromInt(-15),
			wantActual: decimal.NewFromInt(-5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delta, actual := tt.adjType.Apply(tt.system, tt.quantity)
			assert.True(t, tt.wantDelta.Equal(delta), "delta: want %s got %s", tt.wantDelta, delta)
			assert.True(t, tt.wantActual.Equal(actual), "actual: want %s got %s", tt.wantActual, actual)
		})
	}
}

func TestFundTransactionType_SignedEffect(t *testing.T) {
	amount := decimal.NewFromInt(100)

	assert.True(t, amount.Equal(domain.FundDeposit.SignedEffect(amount)))
	assert.True(t, amount.Equal(domain.FundOpeningBalance.SignedEffect(amount)))
	assert.True(t, amount.Equal(domain.FundTransferIn.SignedEffect(amount)))
	assert.True(t, amount.Neg().Equal(domain.FundWithdrawal.SignedEffect(amount)))
	assert.True(t, amount.Neg().Equal(domain.FundTransferOut.SignedEffect(amount)))
}

func TestProduct_HasUOM(t *testing.T) {
	product := domain.Product{
		BaseUOM: "Bottle",
		AlternateUOMs: []domain.AlternateUOM{
			{Name: "Carton", ConversionFactor: decimal.NewFromInt(24)},
		},
	}

	assert.True(t, product.HasUOM("bottle"))
	assert.True(t, product.HasUOM(" CARTON "))
	assert.False(t, product.HasUOM("pallet"))

	factor, ok := product.ConversionFactorFor("carton")
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(24).Equal(factor))

	factor, ok = product.ConversionFactorFor("Bottle")
	assert.True(t, ok)
	assert.True(t, decimal.NewFromInt(1).Equal(factor))

	_, ok = product.ConversionFactorFor("pallet")
	assert.False(t, ok)
}
