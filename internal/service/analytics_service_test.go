package service

import (
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestRevenueByPeriod_PricesByTransactionType(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{
		Name: "Widget", SKU: "WID-1", PurchasePrice: 4, SalePrice: 10, OpeningQuantity: 100,
	})

	post := func(txType model.TransactionType, qty int) {
		_, err := f.transactions.PostTransaction(&PostTransactionRequest{
			Type: txType, ProductID: product.ID, Quantity: qty,
		}, testActor)
		require.NoError(t, err)
	}
	post(model.TxSale, 5)
	post(model.TxSale, 3)
	post(model.TxPurchase, 2)

	buckets, err := f.analytics.RevenueByPeriod("week")
	require.NoError(t, err)
	require.Len(t, buckets, 2) // one day, two types

	byType := map[string]repository.RevenueByDay{}
	for _, b := range buckets {
		byType[b.Type] = b
	}

	// Sales price at salePrice on ABS(quantity): (5+3) * 10.
	require.Equal(t, 80.0, byType["sale"].Revenue)
	require.Equal(t, int64(2), byType["sale"].Count)
	// Purchases price at purchasePrice: 2 * 4.
	require.Equal(t, 8.0, byType["purchase"].Revenue)
	require.Equal(t, int64(1), byType["purchase"].Count)
}

func TestGetStockMovement_SplitsInboundOutbound(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1", OpeningQuantity: 50})

	for _, qty := range []int{4, 6} {
		_, err := f.transactions.PostTransaction(&PostTransactionRequest{
			Type: model.TxPurchase, ProductID: product.ID, Quantity: qty,
		}, testActor)
		require.NoError(t, err)
	}
	_, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type: model.TxSale, ProductID: product.ID, Quantity: 3,
	}, testActor)
	require.NoError(t, err)

	movement, err := f.analytics.GetStockMovement(7)
	require.NoError(t, err)
	require.Len(t, movement, 1)
	require.Equal(t, 10, movement[0].Inbound)
	require.Equal(t, 3, movement[0].Outbound)
}

func TestGetStats_Overview(t *testing.T) {
	f := newFixture(t)
	f.mustCreateProduct(t, &CreateProductRequest{Name: "Low", SKU: "L-1", SalePrice: 10, OpeningQuantity: 1, MinLevel: 5})
	f.mustCreateProduct(t, &CreateProductRequest{Name: "Healthy", SKU: "H-1", SalePrice: 2, OpeningQuantity: 20, MinLevel: 5})

	stats, err := f.analytics.GetStats()
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.TotalProducts)
	require.Equal(t, int64(1), stats.LowStockCount)
	// 1*10 + 20*2
	require.Equal(t, 50.0, stats.TotalValuation)
}
