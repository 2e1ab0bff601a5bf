package service

import (
	"errors"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns product CRUD and the consistency rules that keep the
// supplier link and the inventory threshold mirror in step with direct
// product edits.
type CatalogService interface {
	CreateProduct(req *CreateProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor Actor) error
	SearchProducts(q string) ([]model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ProductLogs(productID uuid.UUID) ([]model.ProductLog, error)
}

type CreateProductRequest struct {
	Name          string     `json:"name" validate:"required"`
	SKU           string     `json:"sku" validate:"required"`
	Barcode       string     `json:"barcode"`
	Category      string     `json:"category"`
	PurchasePrice float64    `json:"purchasePrice"`
	SalePrice     float64    `json:"salePrice"`
	TaxRate       float64    `json:"taxRate"`
	IsActive      *bool      `json:"isActive"`
	SoldBy        *uuid.UUID `json:"soldBy"`

	// Inventory-owned fields accepted on the product form; they seed the
	// MAIN inventory record.
	OpeningQuantity int `json:"openingQuantity"`
	MinLevel        int `json:"minLevel"`
	MaxLevel        int `json:"maxLevel"`
}

// UpdateProductRequest uses patch semantics: nil fields are untouched.
// SoldBy distinguishes "absent" from an explicit null that clears the link.
type UpdateProductRequest struct {
	Name          *string      `json:"name"`
	SKU           *string      `json:"sku"`
	Barcode       *string      `json:"barcode"`
	Category      *string      `json:"category"`
	PurchasePrice *float64     `json:"purchasePrice"`
	SalePrice     *float64     `json:"salePrice"`
	TaxRate       *float64     `json:"taxRate"`
	IsActive      *bool        `json:"isActive"`
	SoldBy        OptionalUUID `json:"soldBy"`

	OpeningQuantity *int `json:"openingQuantity"`
	MinLevel        *int `json:"minLevel"`
	MaxLevel        *int `json:"maxLevel"`

	Note string `json:"note"`
}

type catalogService struct {
	productRepo   repository.ProductRepository
	supplierRepo  repository.SupplierRepository
	inventoryRepo repository.InventoryRepository
	audit         AuditRecorder
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	inventoryRepo repository.InventoryRepository,
	audit AuditRecorder,
	db *gorm.DB,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:   productRepo,
		supplierRepo:  supplierRepo,
		inventoryRepo: inventoryRepo,
		audit:         audit,
		db:            db,
		wsHub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *CreateProductRequest, actor Actor) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	// Validate the supplier link before any write.
	if req.SoldBy != nil {
		if _, err := s.supplierRepo.FindByID(*req.SoldBy); err != nil {
			return nil, ErrSupplierNotFound
		}
	}

	// Duplicate SKU pre-check; the unique index catches the race.
	if existing, _ := s.productRepo.FindBySKU(req.SKU); existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateSKU
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := &model.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Barcode:       req.Barcode,
		Category:      req.Category,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		TaxRate:       req.TaxRate,
		IsActive:      isActive,
		SoldByID:      req.SoldBy,
		MinLevel:      req.MinLevel,
		MaxLevel:      req.MaxLevel,
	}
	product.CreatedBy = actor.ID.String()
	product.UpdatedBy = actor.ID.String()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSKU
			}
			return err
		}
		return s.inventoryRepo.SeedIfAbsent(tx, product.ID, model.DefaultLocation,
			req.OpeningQuantity, req.MinLevel, req.MaxLevel, actor.ID.String())
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("product_created", product, actor)

	if err := s.audit.RecordProductChange(product.ID, actor, nil, model.SnapshotOf(product), "Product created"); err != nil {
		return product, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	before := model.SnapshotOf(product)

	// Validate-then-write: a dangling supplier reference aborts the whole
	// update before any mutation.
	if req.SoldBy.Set && req.SoldBy.Value != nil {
		if _, err := s.supplierRepo.FindByID(*req.SoldBy.Value); err != nil {
			return nil, ErrSupplierNotFound
		}
	}

	applyProductPatch(product, req)
	product.UpdatedBy = actor.ID.String()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Save(tx, product); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSKU
			}
			return err
		}
		// Mirror inventory-owned fields into the MAIN record whenever the
		// request carries any of them.
		if req.OpeningQuantity != nil || req.MinLevel != nil || req.MaxLevel != nil {
			_, err := s.inventoryRepo.Upsert(tx, product.ID, model.DefaultLocation,
				req.OpeningQuantity, req.MinLevel, req.MaxLevel, actor.ID.String())
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcast("product_updated", product, actor)

	note := req.Note
	if note == "" {
		note = "Product updated"
	}
	if err := s.audit.RecordProductChange(product.ID, actor, before, model.SnapshotOf(product), note); err != nil {
		return product, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	before := model.SnapshotOf(product)

	// Soft delete: inventory, transactions, and logs keep referencing the
	// product so the audit trail survives. The derived supplier view stops
	// listing it on its own.
	if err := s.productRepo.Delete(s.db, product); err != nil {
		return err
	}

	s.broadcast("product_deleted", product, actor)

	return s.audit.RecordProductChange(product.ID, actor, before, nil, "Product deleted")
}

func (s *catalogService) SearchProducts(q string) ([]model.Product, error) {
	return s.productRepo.Search(q)
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *catalogService) ProductLogs(productID uuid.UUID) ([]model.ProductLog, error) {
	return s.audit.ProductLogs(productID)
}

func applyProductPatch(product *model.Product, req *UpdateProductRequest) {
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.PurchasePrice != nil {
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		product.SalePrice = *req.SalePrice
	}
	if req.TaxRate != nil {
		product.TaxRate = *req.TaxRate
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.SoldBy.Set {
		product.SoldByID = req.SoldBy.Value
		product.SoldBy = nil
	}
	// Threshold mirror held on the product row.
	if req.MinLevel != nil {
		product.MinLevel = *req.MinLevel
	}
	if req.MaxLevel != nil {
		product.MaxLevel = *req.MaxLevel
	}
}

func (s *catalogService) broadcast(action string, product *model.Product, actor Actor) {
	if s.wsHub == nil {
		return
	}
	s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "catalog_update",
		"action": action,
		"product": map[string]interface{}{
			"id":        product.ID,
			"sku":       product.SKU,
			"name":      product.Name,
			"salePrice": product.SalePrice,
		},
		"user": map[string]interface{}{
			"id":    actor.ID,
			"name":  actor.Name,
			"email": actor.Email,
		},
	})
}
