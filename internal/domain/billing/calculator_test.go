package billing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
)

const delta = 0.01

func vatAndService() []entity.TaxRule {
	return []entity.TaxRule{
		{Name: "VAT", Rate: 0.075, Kind: enum.TaxKindVAT, VisibleOnReceipt: true, Position: 0},
		{Name: "Service Charge", Rate: 0.10, Kind: enum.TaxKindServiceCharge, VisibleOnReceipt: true, Position: 1},
	}
}

func cart(totals ...float64) []entity.TransactionLine {
	lines := make([]entity.TransactionLine, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, entity.TransactionLine{Quantity: 1, UnitPrice: t, LineTotal: t})
	}
	return lines
}

func TestComputeInclusive(t *testing.T) {
	// Two items at 10,000 each, 7.5% VAT + 10% service charge, prices
	// already include taxes: the customer pays exactly the shelf price.
	snap := TaxSnapshot{Rules: vatAndService(), Mode: enum.PricingModeInclusive}
	res := Compute(cart(10000, 10000), 0, snap)

	require.InDelta(t, 20000, res.GrossSubtotal, delta)
	require.InDelta(t, 20000, res.TotalAmount, delta)
	require.InDelta(t, 17021.28, res.BaseValue, delta)
	require.Len(t, res.Taxes, 2)
	require.InDelta(t, 1276.60, res.Taxes[0].Amount, delta)
	require.InDelta(t, 1702.13, res.Taxes[1].Amount, delta)

	// Base plus all taxes reconstructs the total.
	sum := res.BaseValue
	for _, tax := range res.Taxes {
		sum += tax.Amount
	}
	require.InDelta(t, res.TotalAmount, sum, delta)
}

func TestComputeExclusive(t *testing.T) {
	snap := TaxSnapshot{Rules: vatAndService(), Mode: enum.PricingModeExclusive}
	res := Compute(cart(10000, 10000), 0, snap)

	require.InDelta(t, 20000, res.GrossSubtotal, delta)
	require.InDelta(t, 20000, res.BaseValue, delta)
	require.InDelta(t, 1500, res.Taxes[0].Amount, delta)
	require.InDelta(t, 2000, res.Taxes[1].Amount, delta)
	require.InDelta(t, 23500, res.TotalAmount, delta)
}

func TestComputeDiscountBeforeTax(t *testing.T) {
	snap := TaxSnapshot{Rules: vatAndService(), Mode: enum.PricingModeExclusive}
	res := Compute(cart(10000), 2000, snap)

	require.InDelta(t, 10000, res.GrossSubtotal, delta)
	require.InDelta(t, 8000, res.NetAfterDiscount, delta)
	require.InDelta(t, 8000, res.BaseValue, delta)
	require.InDelta(t, 8000*0.075, res.Taxes[0].Amount, delta)
	require.InDelta(t, 8000*0.10, res.Taxes[1].Amount, delta)
}

func TestComputeDiscountExceedsSubtotal(t *testing.T) {
	for _, mode := range []enum.PricingMode{enum.PricingModeInclusive, enum.PricingModeExclusive} {
		snap := TaxSnapshot{Rules: vatAndService(), Mode: mode}
		res := Compute(cart(5000), 9999999, snap)

		require.InDelta(t, 0, res.NetAfterDiscount, delta)
		require.InDelta(t, 0, res.BaseValue, delta)
		require.InDelta(t, 0, res.TotalAmount, delta)
		for _, tax := range res.Taxes {
			require.InDelta(t, 0, tax.Amount, delta)
		}
	}
}

func TestComputeNoTaxRules(t *testing.T) {
	// With no rules the two modes must agree: total equals base equals net.
	for _, mode := range []enum.PricingMode{enum.PricingModeInclusive, enum.PricingModeExclusive} {
		res := Compute(cart(1500, 2500), 500, TaxSnapshot{Mode: mode})
		require.InDelta(t, 4000, res.GrossSubtotal, delta)
		require.InDelta(t, 3500, res.BaseValue, delta)
		require.InDelta(t, 3500, res.TotalAmount, delta)
		require.Empty(t, res.Taxes)
	}
}

func TestComputeEmptyCart(t *testing.T) {
	res := Compute(nil, 0, TaxSnapshot{Rules: vatAndService(), Mode: enum.PricingModeInclusive})
	require.Zero(t, res.GrossSubtotal)
	require.Zero(t, res.TotalAmount)
}

func TestComputeModesAreInverseConsistent(t *testing.T) {
	// Feeding an exclusive total back through inclusive mode recovers the
	// same base and per-rule tax amounts.
	rules := vatAndService()
	excl := Compute(cart(12345.67), 0, TaxSnapshot{Rules: rules, Mode: enum.PricingModeExclusive})
	incl := Compute(cart(excl.TotalAmount), 0, TaxSnapshot{Rules: rules, Mode: enum.PricingModeInclusive})

	require.InDelta(t, excl.BaseValue, incl.BaseValue, delta)
	require.InDelta(t, excl.TotalAmount, incl.TotalAmount, delta)
	for i := range excl.Taxes {
		require.InDelta(t, excl.Taxes[i].Amount, incl.Taxes[i].Amount, delta)
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	snap := TaxSnapshot{Rules: vatAndService(), Mode: enum.PricingModeInclusive}
	lines := cart(1999.99, 350, 4200)
	first := Compute(lines, 100, snap)
	second := Compute(lines, 100, snap)
	require.Equal(t, first, second)
}

func TestComputeSingleRate(t *testing.T) {
	snap := TaxSnapshot{
		Rules: []entity.TaxRule{{Name: "VAT", Rate: 0.075, Kind: enum.TaxKindVAT}},
		Mode:  enum.PricingModeInclusive,
	}
	res := Compute(cart(10750), 0, snap)
	require.InDelta(t, 10000, res.BaseValue, delta)
	require.InDelta(t, 750, res.Taxes[0].Amount, delta)
	require.InDelta(t, 10750, res.TotalAmount, delta)
}

func TestLineTotal(t *testing.T) {
	require.InDelta(t, 7500, LineTotal(3, 2500), delta)
	require.Zero(t, LineTotal(0, 2500))
}

func TestBalanceClampsAtZero(t *testing.T) {
	require.InDelta(t, 500, Balance(2000, 1500), delta)
	require.Zero(t, Balance(2000, 2000))
	require.Zero(t, Balance(2000, 99999))
	// A zero-total document owes nothing.
	require.Zero(t, Balance(0, 0))
}

func TestDeriveStatus(t *testing.T) {
	require.Equal(t, enum.SettlementStatusUnpaid, DeriveStatus(0, 2000))
	require.Equal(t, enum.SettlementStatusPartial, DeriveStatus(1, 2000))
	require.Equal(t, enum.SettlementStatusPartial, DeriveStatus(1999.99, 2000))
	require.Equal(t, enum.SettlementStatusPaid, DeriveStatus(2000, 2000))
	// No tender recorded means unpaid, even at total zero.
	require.Equal(t, enum.SettlementStatusUnpaid, DeriveStatus(0, 0))
}

func TestDeriveStatusRegressesAfterAmendment(t *testing.T) {
	// A settled folio that receives new charges drops back to partial.
	paid := 20000.0
	require.Equal(t, enum.SettlementStatusPaid, DeriveStatus(paid, 20000))
	require.Equal(t, enum.SettlementStatusPartial, DeriveStatus(paid, 32500))
}
