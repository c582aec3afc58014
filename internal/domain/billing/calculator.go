package billing

import (
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
)

// TaxSnapshot is the tax configuration captured at the moment of calculation.
// Every calculation site receives a snapshot instead of reading live settings,
// so an admin edit cannot change a cart mid-checkout.
type TaxSnapshot struct {
	Rules []entity.TaxRule
	Mode  enum.PricingMode
}

// SumRates returns the flat sum of all rule rates. Rates share one base and
// are never compounded.
func (s TaxSnapshot) SumRates() float64 {
	var sum float64
	for _, r := range s.Rules {
		sum += r.Rate
	}
	return sum
}

// TaxAmount is one rule's share of a computed settlement.
type TaxAmount struct {
	RuleID           uuid.UUID
	Name             string
	Rate             float64
	Kind             enum.TaxKind
	Amount           float64
	VisibleOnReceipt bool
	Position         int
}

// Settlement is the result of a tax computation over a cart.
type Settlement struct {
	GrossSubtotal    float64
	NetAfterDiscount float64
	BaseValue        float64
	Taxes            []TaxAmount
	TotalAmount      float64
}

// LineTotal returns quantity times unit price. Line totals stored on a
// transaction must always equal this at persist time.
func LineTotal(quantity int, unitPrice float64) float64 {
	return float64(quantity) * unitPrice
}

// Compute derives the financial snapshot for a cart of lines, a flat currency
// discount and a tax snapshot. All amounts are plain float64 currency values;
// no rounding is applied here, display layers format for locale.
//
// Inclusive mode: the discounted gross IS the total; the base is backed out
// by dividing by (1 + sum of rates). Exclusive mode: the discounted gross is
// the base; taxes are added on top. The discount is subtracted before tax in
// both modes and the net is clamped at zero.
func Compute(lines []entity.TransactionLine, discount float64, snap TaxSnapshot) Settlement {
	var gross float64
	for _, l := range lines {
		gross += l.LineTotal
	}

	net := gross - discount
	if net < 0 {
		net = 0
	}

	sumRates := snap.SumRates()

	var base, total float64
	if snap.Mode == enum.PricingModeInclusive {
		total = net
		base = total / (1 + sumRates)
	} else {
		base = net
		total = base
	}

	taxes := make([]TaxAmount, 0, len(snap.Rules))
	for i, r := range snap.Rules {
		amount := base * r.Rate
		taxes = append(taxes, TaxAmount{
			RuleID:           r.ID,
			Name:             r.Name,
			Rate:             r.Rate,
			Kind:             r.Kind,
			Amount:           amount,
			VisibleOnReceipt: r.VisibleOnReceipt,
			Position:         i,
		})
		if snap.Mode != enum.PricingModeInclusive {
			total += amount
		}
	}

	return Settlement{
		GrossSubtotal:    gross,
		NetAfterDiscount: net,
		BaseValue:        base,
		Taxes:            taxes,
		TotalAmount:      total,
	}
}

// Balance returns the outstanding amount, clamped at zero. Overpayment is
// never carried as credit.
func Balance(total, paid float64) float64 {
	b := total - paid
	if b < 0 {
		return 0
	}
	return b
}

// DeriveStatus maps paid vs. total onto the settlement status. Status is
// always derived, never set directly, so an amendment that raises the total
// regresses a paid transaction back to partial or unpaid automatically.
func DeriveStatus(paid, total float64) enum.SettlementStatus {
	switch {
	case paid <= 0:
		return enum.SettlementStatusUnpaid
	case paid < total:
		return enum.SettlementStatusPartial
	default:
		return enum.SettlementStatusPaid
	}
}
