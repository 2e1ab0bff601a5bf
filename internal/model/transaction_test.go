package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransactionTypeIsValid(t *testing.T) {
	require.True(t, TxPurchase.IsValid())
	require.True(t, TxSale.IsValid())
	require.True(t, TxAdjustment.IsValid())
	require.False(t, TransactionType("refund").IsValid())
	require.False(t, TransactionType("").IsValid())
}

func TestEffectiveDelta(t *testing.T) {
	cases := []struct {
		name     string
		txType   TransactionType
		quantity int
		want     int
	}{
		{"purchase positive", TxPurchase, 5, 5},
		{"purchase sign normalized", TxPurchase, -5, 5},
		{"sale positive input", TxSale, 3, -3},
		{"sale negative input", TxSale, -3, -3},
		{"adjustment keeps sign up", TxAdjustment, 7, 7},
		{"adjustment keeps sign down", TxAdjustment, -7, -7},
		{"zero quantity", TxSale, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.txType.EffectiveDelta(tc.quantity))
		})
	}
}
