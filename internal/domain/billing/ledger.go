package billing

import (
	"errors"
	"fmt"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
)

var (
	// ErrNegativePayment rejects payment rows with an amount below zero.
	ErrNegativePayment = errors.New("payment amount must not be negative")
	// ErrNoPayments rejects a settlement request whose rows all net to zero.
	ErrNoPayments = errors.New("at least one payment with a positive amount is required")
	// ErrOverpayment rejects payments that would push paid above total.
	ErrOverpayment = errors.New("payment exceeds outstanding balance")
)

// PaymentInput is one tender row submitted at checkout or settlement.
type PaymentInput struct {
	Method enum.PaymentMethod
	Amount float64
}

// NormalizePayments drops zero-amount rows and rejects negative ones.
// An empty result after dropping is an error: a settlement request must
// carry at least one positive row.
func NormalizePayments(in []PaymentInput) ([]PaymentInput, error) {
	out := make([]PaymentInput, 0, len(in))
	for _, p := range in {
		if p.Amount < 0 {
			return nil, fmt.Errorf("%w: got %.2f", ErrNegativePayment, p.Amount)
		}
		if p.Amount == 0 {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoPayments
	}
	return out, nil
}

// LedgerPosition is the outcome of applying a payment batch.
type LedgerPosition struct {
	Rows    []PaymentInput
	Paid    float64
	Balance float64
	Status  enum.SettlementStatus
}

// Apply validates a batch of payments against the current ledger position and
// returns the new paid amount, balance and derived status along with the
// normalized rows to record. The batch is all-or-nothing: if its sum would
// exceed the outstanding balance the whole request is rejected and nothing
// is recorded.
func Apply(total, currentPaid float64, payments []PaymentInput) (LedgerPosition, error) {
	rows, err := NormalizePayments(payments)
	if err != nil {
		return LedgerPosition{}, err
	}

	var sum float64
	for _, p := range rows {
		sum += p.Amount
	}

	outstanding := Balance(total, currentPaid)
	if sum > outstanding {
		return LedgerPosition{}, fmt.Errorf("%w: outstanding %.2f, tendered %.2f", ErrOverpayment, outstanding, sum)
	}

	paid := currentPaid + sum
	return LedgerPosition{
		Rows:    rows,
		Paid:    paid,
		Balance: Balance(total, paid),
		Status:  DeriveStatus(paid, total),
	}, nil
}
