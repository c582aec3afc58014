package billing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
)

func TestNormalizePayments(t *testing.T) {
	rows, err := NormalizePayments([]PaymentInput{
		{Method: enum.PaymentMethodCash, Amount: 5000},
		{Method: enum.PaymentMethodCard, Amount: 0},
		{Method: enum.PaymentMethodTransfer, Amount: 2500},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, enum.PaymentMethodCash, rows[0].Method)
	require.Equal(t, enum.PaymentMethodTransfer, rows[1].Method)
}

func TestNormalizePaymentsRejectsNegative(t *testing.T) {
	_, err := NormalizePayments([]PaymentInput{{Method: enum.PaymentMethodCash, Amount: -1}})
	require.ErrorIs(t, err, ErrNegativePayment)
}

func TestNormalizePaymentsRejectsAllZero(t *testing.T) {
	_, err := NormalizePayments([]PaymentInput{
		{Method: enum.PaymentMethodCash, Amount: 0},
		{Method: enum.PaymentMethodCard, Amount: 0},
	})
	require.ErrorIs(t, err, ErrNoPayments)

	_, err = NormalizePayments(nil)
	require.ErrorIs(t, err, ErrNoPayments)
}

func TestApplySplitTenderSettlesInFull(t *testing.T) {
	pos, err := Apply(20000, 0, []PaymentInput{
		{Method: enum.PaymentMethodCash, Amount: 12000},
		{Method: enum.PaymentMethodCard, Amount: 8000},
	})
	require.NoError(t, err)
	require.InDelta(t, 20000, pos.Paid, delta)
	require.Zero(t, pos.Balance)
	require.Equal(t, enum.SettlementStatusPaid, pos.Status)
	require.Len(t, pos.Rows, 2)
}

func TestApplyPartialThenRemainder(t *testing.T) {
	first, err := Apply(20000, 0, []PaymentInput{{Method: enum.PaymentMethodTransfer, Amount: 5000}})
	require.NoError(t, err)
	require.InDelta(t, 5000, first.Paid, delta)
	require.InDelta(t, 15000, first.Balance, delta)
	require.Equal(t, enum.SettlementStatusPartial, first.Status)

	second, err := Apply(20000, first.Paid, []PaymentInput{{Method: enum.PaymentMethodCash, Amount: 15000}})
	require.NoError(t, err)
	require.Equal(t, enum.SettlementStatusPaid, second.Status)
	require.Zero(t, second.Balance)
}

func TestApplyRejectsOverpayment(t *testing.T) {
	// One row over the total.
	_, err := Apply(20000, 0, []PaymentInput{{Method: enum.PaymentMethodCash, Amount: 20000.01}})
	require.ErrorIs(t, err, ErrOverpayment)

	// Batch sum over the outstanding balance after a partial payment.
	_, err = Apply(20000, 15000, []PaymentInput{
		{Method: enum.PaymentMethodCash, Amount: 3000},
		{Method: enum.PaymentMethodCard, Amount: 3000},
	})
	require.ErrorIs(t, err, ErrOverpayment)

	// A settled transaction accepts nothing further.
	_, err = Apply(20000, 20000, []PaymentInput{{Method: enum.PaymentMethodCash, Amount: 1}})
	require.ErrorIs(t, err, ErrOverpayment)
}

func TestApplyRejectionLeavesNothingToRecord(t *testing.T) {
	pos, err := Apply(1000, 0, []PaymentInput{
		{Method: enum.PaymentMethodCash, Amount: 600},
		{Method: enum.PaymentMethodCard, Amount: 600},
	})
	require.Error(t, err)
	require.Empty(t, pos.Rows)
	require.Zero(t, pos.Paid)
}

func TestApplyExactSettlement(t *testing.T) {
	pos, err := Apply(23500, 0, []PaymentInput{{Method: enum.PaymentMethodPOS, Amount: 23500}})
	require.NoError(t, err)
	require.Equal(t, enum.SettlementStatusPaid, pos.Status)
	require.Zero(t, pos.Balance)
}
