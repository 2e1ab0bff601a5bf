package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCreateSupplier_DuplicateName(t *testing.T) {
	f := newFixture(t)
	f.mustCreateSupplier(t, "Acme")

	_, err := f.suppliers.CreateSupplier(&CreateSupplierRequest{Name: "Acme"}, testActor)
	require.ErrorIs(t, err, ErrDuplicateSupplier)
}

func TestUpdateSupplier_PatchesContactFields(t *testing.T) {
	f := newFixture(t)
	supplier := f.mustCreateSupplier(t, "Acme")

	phone := "555-0101"
	updated, err := f.suppliers.UpdateSupplier(supplier.ID, &UpdateSupplierRequest{Phone: &phone}, testActor)
	require.NoError(t, err)
	require.Equal(t, "555-0101", updated.Phone)
	require.Equal(t, "Acme", updated.Name)
}

func TestUpdateSupplier_ReplaceSuppliedSet(t *testing.T) {
	f := newFixture(t)
	supplier := f.mustCreateSupplier(t, "Acme")
	kept := f.mustCreateProduct(t, &CreateProductRequest{Name: "Kept", SKU: "K-1", SoldBy: &supplier.ID})
	dropped := f.mustCreateProduct(t, &CreateProductRequest{Name: "Dropped", SKU: "D-1", SoldBy: &supplier.ID})
	added := f.mustCreateProduct(t, &CreateProductRequest{Name: "Added", SKU: "A-1"})

	set := []uuid.UUID{kept.ID, added.ID}
	updated, err := f.suppliers.UpdateSupplier(supplier.ID, &UpdateSupplierRequest{ProductsSupplied: &set}, testActor)
	require.NoError(t, err)
	require.Len(t, updated.ProductsSupplied, 2)

	keptStored, err := f.catalog.GetProduct(kept.ID)
	require.NoError(t, err)
	require.NotNil(t, keptStored.SoldByID)
	require.Equal(t, supplier.ID, *keptStored.SoldByID)

	addedStored, err := f.catalog.GetProduct(added.ID)
	require.NoError(t, err)
	require.NotNil(t, addedStored.SoldByID)
	require.Equal(t, supplier.ID, *addedStored.SoldByID)

	droppedStored, err := f.catalog.GetProduct(dropped.ID)
	require.NoError(t, err)
	require.Nil(t, droppedStored.SoldByID)
}

func TestUpdateSupplier_RemovalDoesNotClobberReassignment(t *testing.T) {
	f := newFixture(t)
	supplierA := f.mustCreateSupplier(t, "Acme")
	supplierB := f.mustCreateSupplier(t, "Bolt")
	product := f.mustCreateProduct(t, &CreateProductRequest{Name: "Widget", SKU: "WID-1", SoldBy: &supplierA.ID})

	// The product moves to B between A's read of its set and the update
	// that drops it; the conditional clear must leave B's claim alone.
	_, err := f.catalog.UpdateProduct(product.ID, &UpdateProductRequest{
		SoldBy: OptionalUUID{Set: true, Value: &supplierB.ID},
	}, testActor)
	require.NoError(t, err)

	empty := []uuid.UUID{}
	_, err = f.suppliers.UpdateSupplier(supplierA.ID, &UpdateSupplierRequest{ProductsSupplied: &empty}, testActor)
	require.NoError(t, err)

	stored, err := f.catalog.GetProduct(product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SoldByID)
	require.Equal(t, supplierB.ID, *stored.SoldByID)
}

func TestDeleteSupplier_ClearsSoldByEverywhere(t *testing.T) {
	f := newFixture(t)
	supplier := f.mustCreateSupplier(t, "Acme")
	other := f.mustCreateSupplier(t, "Bolt")
	p1 := f.mustCreateProduct(t, &CreateProductRequest{Name: "One", SKU: "P-1", SoldBy: &supplier.ID})
	p2 := f.mustCreateProduct(t, &CreateProductRequest{Name: "Two", SKU: "P-2", SoldBy: &supplier.ID})
	p3 := f.mustCreateProduct(t, &CreateProductRequest{Name: "Three", SKU: "P-3", SoldBy: &other.ID})

	require.NoError(t, f.suppliers.DeleteSupplier(supplier.ID, testActor))

	_, err := f.suppliers.GetSupplier(supplier.ID)
	require.ErrorIs(t, err, ErrSupplierNotFound)

	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		stored, err := f.catalog.GetProduct(id)
		require.NoError(t, err)
		require.Nil(t, stored.SoldByID)
	}

	// Unrelated links are untouched.
	stored, err := f.catalog.GetProduct(p3.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SoldByID)
	require.Equal(t, other.ID, *stored.SoldByID)
}

func TestGetSupplier_Unknown(t *testing.T) {
	f := newFixture(t)
	_, err := f.suppliers.GetSupplier(uuid.New())
	require.ErrorIs(t, err, ErrSupplierNotFound)
}
