package service

import (
	"testing"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.Inventory{},
		&model.StockTransaction{},
		&model.InventoryLog{},
		&model.ProductLog{},
	))
	return db
}

// fixture wires the full service stack against a test database, without a
// websocket hub.
type fixture struct {
	db *gorm.DB

	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	inventoryRepo repository.InventoryRepository
	txRepo        repository.TransactionRepository
	auditRepo     repository.AuditRepository

	audit        AuditRecorder
	catalog      CatalogService
	suppliers    SupplierService
	inventory    InventoryService
	transactions TransactionService
	analytics    AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:            db,
		productRepo:   repository.NewProductRepo(db),
		supplierRepo:  repository.NewSupplierRepo(db),
		inventoryRepo: repository.NewInventoryRepo(db),
		txRepo:        repository.NewTransactionRepo(db),
		auditRepo:     repository.NewAuditRepo(db),
	}
	f.audit = NewAuditRecorder(f.auditRepo)
	f.catalog = NewCatalogService(f.productRepo, f.supplierRepo, f.inventoryRepo, f.audit, db, nil)
	f.suppliers = NewSupplierService(f.supplierRepo, f.productRepo, db)
	f.inventory = NewInventoryService(f.inventoryRepo, f.productRepo, f.audit, db, nil)
	f.transactions = NewTransactionService(f.productRepo, f.inventoryRepo, f.txRepo, db, nil)
	f.analytics = NewAnalyticsService(f.txRepo)
	return f
}

var testActor = Actor{ID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), Name: "Tester", Email: "tester@example.com"}

func (f *fixture) mustCreateProduct(t *testing.T, req *CreateProductRequest) *model.Product {
	t.Helper()
	product, err := f.catalog.CreateProduct(req, testActor)
	require.NoError(t, err)
	return product
}

func (f *fixture) mustCreateSupplier(t *testing.T, name string) *model.Supplier {
	t.Helper()
	supplier, err := f.suppliers.CreateSupplier(&CreateSupplierRequest{Name: name}, testActor)
	require.NoError(t, err)
	return supplier
}

func (f *fixture) inventoryOf(t *testing.T, productID uuid.UUID, location string) *model.Inventory {
	t.Helper()
	inv, err := f.inventoryRepo.Find(f.db, productID, location)
	require.NoError(t, err)
	return inv
}
