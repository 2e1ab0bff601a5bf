package service

import (
	"errors"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierService owns supplier CRUD plus the symmetric entry point of the
// product/supplier link: a supplier edit that replaces the supplied-product
// set is translated into sold-by updates on the product side.
type SupplierService interface {
	CreateSupplier(req *CreateSupplierRequest, actor Actor) (*model.Supplier, error)
	UpdateSupplier(id uuid.UUID, req *UpdateSupplierRequest, actor Actor) (*model.Supplier, error)
	DeleteSupplier(id uuid.UUID, actor Actor) error
	GetSuppliers() ([]model.Supplier, error)
	GetSupplier(id uuid.UUID) (*model.Supplier, error)
}

type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateSupplierRequest patches contact fields; a non-nil ProductsSupplied
// is treated as the complete replacement set for the supplier's products.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	ProductsSupplied *[]uuid.UUID `json:"productsSupplied"`
}

type supplierService struct {
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	db           *gorm.DB
}

func NewSupplierService(supplierRepo repository.SupplierRepository, productRepo repository.ProductRepository, db *gorm.DB) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		db:           db,
	}
}

func (s *supplierService) CreateSupplier(req *CreateSupplierRequest, actor Actor) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	if existing, _ := s.supplierRepo.FindByName(req.Name); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateSupplier
	}

	supplier := &model.Supplier{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	supplier.CreatedBy = actor.ID.String()
	supplier.UpdatedBy = actor.ID.String()

	if err := s.supplierRepo.Create(supplier); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSupplier
		}
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) UpdateSupplier(id uuid.UUID, req *UpdateSupplierRequest, actor Actor) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}

	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	supplier.UpdatedBy = actor.ID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.supplierRepo.Save(tx, supplier); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSupplier
			}
			return err
		}
		if req.ProductsSupplied != nil {
			return s.replaceSuppliedSet(tx, supplier.ID, *req.ProductsSupplied, actor)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.supplierRepo.FindByID(supplier.ID)
}

// replaceSuppliedSet diffs the requested product set against the products
// currently pointing at the supplier. Newly listed products are claimed;
// products that dropped out are released, but only while their sold-by
// still points here, so a concurrent reassignment wins.
func (s *supplierService) replaceSuppliedSet(tx *gorm.DB, supplierID uuid.UUID, requested []uuid.UUID, actor Actor) error {
	current, err := s.productRepo.IDsBySupplier(tx, supplierID)
	if err != nil {
		return err
	}

	want := make(map[uuid.UUID]bool, len(requested))
	for _, id := range requested {
		want[id] = true
	}
	have := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		have[id] = true
	}

	var added, removed []uuid.UUID
	for id := range want {
		if !have[id] {
			added = append(added, id)
		}
	}
	for id := range have {
		if !want[id] {
			removed = append(removed, id)
		}
	}

	if err := s.productRepo.AssignSupplier(tx, added, supplierID, actor.ID.String()); err != nil {
		return err
	}
	return s.productRepo.UnassignSupplier(tx, removed, supplierID, actor.ID.String())
}

func (s *supplierService) DeleteSupplier(id uuid.UUID, actor Actor) error {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return ErrSupplierNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Release every product pointing at the supplier first so no
		// dangling sold-by reference survives the delete.
		if err := s.productRepo.ClearSupplier(tx, supplier.ID, actor.ID.String()); err != nil {
			return err
		}
		return s.supplierRepo.Delete(tx, supplier)
	})
}

func (s *supplierService) GetSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

func (s *supplierService) GetSupplier(id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, ErrSupplierNotFound
	}
	return supplier, nil
}
