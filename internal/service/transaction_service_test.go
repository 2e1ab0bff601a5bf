package service

import (
	"errors"
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostTransaction_SaleAppliesEffectiveDelta(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{
		Name: "Widget", SKU: "WID-1", OpeningQuantity: 20,
	})

	result, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      model.TxSale,
		ProductID: product.ID,
		Location:  "MAIN",
		Quantity:  5,
	}, testActor)
	require.NoError(t, err)

	require.Equal(t, 15, result.Inventory.Quantity)
	require.Equal(t, -5, result.Transaction.Quantity)
	require.Equal(t, model.TxSale, result.Transaction.Type)

	// The stored record carries the effective delta, not the raw input.
	var stored model.StockTransaction
	require.NoError(t, f.db.First(&stored, "id = ?", result.Transaction.ID).Error)
	require.Equal(t, -5, stored.Quantity)
}

func TestPostTransaction_PurchaseNormalizesSign(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1"})

	// A negative raw quantity still adds stock for purchases.
	result, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      model.TxPurchase,
		ProductID: product.ID,
		Quantity:  -7,
	}, testActor)
	require.NoError(t, err)
	require.Equal(t, 7, result.Transaction.Quantity)
	require.Equal(t, 7, result.Inventory.Quantity)
}

func TestPostTransaction_AdjustmentKeepsSignedDelta(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1", OpeningQuantity: 3})

	result, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      model.TxAdjustment,
		ProductID: product.ID,
		Quantity:  -10,
	}, testActor)
	require.NoError(t, err)
	require.Equal(t, -10, result.Transaction.Quantity)
	// No rule stops the quantity from going negative.
	require.Equal(t, -7, result.Inventory.Quantity)
}

func TestPostTransaction_NoDeduplication(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1", OpeningQuantity: 20})

	req := &PostTransactionRequest{Type: model.TxSale, ProductID: product.ID, Quantity: 5}
	_, err := f.transactions.PostTransaction(req, testActor)
	require.NoError(t, err)
	result, err := f.transactions.PostTransaction(req, testActor)
	require.NoError(t, err)

	// Posting the same sale twice changes the quantity twice.
	require.Equal(t, 10, result.Inventory.Quantity)
}

func TestPostTransaction_CreatesInventoryLazily(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1"})

	result, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      model.TxPurchase,
		ProductID: product.ID,
		Location:  "WAREHOUSE-2",
		Quantity:  4,
	}, testActor)
	require.NoError(t, err)
	require.Equal(t, "WAREHOUSE-2", result.Inventory.Location)
	require.Equal(t, 4, result.Inventory.Quantity)
}

func TestPostTransaction_InvalidType(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1"})

	_, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      "donation",
		ProductID: product.ID,
		Quantity:  1,
	}, testActor)
	require.ErrorIs(t, err, ErrInvalidTransactionType)
}

func TestPostTransaction_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.transactions.PostTransaction(&PostTransactionRequest{
		Type:      model.TxPurchase,
		ProductID: uuid.New(),
		Quantity:  1,
	}, testActor)
	require.ErrorIs(t, err, ErrProductNotFound)
}

// failingTxRepo forces the transaction insert to fail after the inventory
// increment already ran inside the same database transaction.
type failingTxRepo struct {
	repository.TransactionRepository
}

func (f *failingTxRepo) Create(tx *gorm.DB, t *model.StockTransaction) error {
	return errors.New("insert rejected")
}

func TestPostTransaction_AtomicRollback(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1", OpeningQuantity: 20})

	svc := NewTransactionService(f.productRepo, f.inventoryRepo, &failingTxRepo{f.txRepo}, f.db, nil)
	_, err := svc.PostTransaction(&PostTransactionRequest{
		Type:      model.TxSale,
		ProductID: product.ID,
		Quantity:  5,
	}, testActor)
	require.Error(t, err)

	// Neither side of the atomic unit may survive.
	inv := f.inventoryOf(t, product.ID, model.DefaultLocation)
	require.Equal(t, 20, inv.Quantity)

	var count int64
	require.NoError(t, f.db.Model(&model.StockTransaction{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestGetAllTransactions_NewestFirst(t *testing.T) {
	f := newFixture(t)
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1"})

	for i := 0; i < 3; i++ {
		_, err := f.transactions.PostTransaction(&PostTransactionRequest{
			Type:      model.TxPurchase,
			ProductID: product.ID,
			Quantity:  i + 1,
		}, testActor)
		require.NoError(t, err)
	}

	list, err := f.transactions.GetAllTransactions()
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.NotNil(t, list[0].Product)
	require.Equal(t, "Widget", list[0].Product.Name)
}
