package service

import (
	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryService serves the direct-edit side of the inventory ledger:
// listing stock levels and applying manual adjustments with an audit trail.
type InventoryService interface {
	List(lowStockOnly bool) ([]model.Inventory, error)
	Adjust(req *AdjustRequest, actor Actor) (*model.Inventory, error)
	Logs(productID uuid.UUID) ([]model.InventoryLog, error)
}

type AdjustRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Location  string    `json:"location"`

	// All optional; absent fields leave the stored value alone.
	QuantityDelta *int `json:"quantityDelta"`
	MinLevel      *int `json:"minLevel"`
	MaxLevel      *int `json:"maxLevel"`

	Note string `json:"note"`
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	audit         AuditRecorder
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	audit AuditRecorder,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		audit:         audit,
		db:            db,
		wsHub:         hub,
	}
}

func (s *inventoryService) List(lowStockOnly bool) ([]model.Inventory, error) {
	return s.inventoryRepo.List(lowStockOnly)
}

// Adjust applies a manual stock correction and threshold edit outside the
// transaction ledger. Quantity may go negative; the ledger records the
// movement either way.
func (s *inventoryService) Adjust(req *AdjustRequest, actor Actor) (*model.Inventory, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}
	location := req.Location
	if location == "" {
		location = model.DefaultLocation
	}

	if _, err := s.productRepo.FindByID(req.ProductID); err != nil {
		return nil, ErrProductNotFound
	}

	var inv *model.Inventory
	var before model.Inventory

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		inv, err = s.inventoryRepo.Ensure(tx, req.ProductID, location, actor.ID.String())
		if err != nil {
			return err
		}
		before = *inv

		if req.QuantityDelta != nil {
			inv.Quantity += *req.QuantityDelta
		}
		if req.MinLevel != nil {
			inv.MinLevel = *req.MinLevel
		}
		if req.MaxLevel != nil {
			inv.MaxLevel = *req.MaxLevel
		}
		inv.UpdatedBy = actor.ID.String()
		if err := s.inventoryRepo.Save(tx, inv); err != nil {
			return err
		}

		// Write thresholds back into the product-held mirror fields.
		if req.MinLevel != nil || req.MaxLevel != nil {
			return s.productRepo.UpdateThresholds(tx, req.ProductID, req.MinLevel, req.MaxLevel, actor.ID.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "inventory_adjusted",
			"inventory": map[string]interface{}{
				"productId":   inv.ProductID,
				"location":    inv.Location,
				"oldQuantity": before.Quantity,
				"newQuantity": inv.Quantity,
			},
			"user": map[string]interface{}{
				"id":   actor.ID,
				"name": actor.Name,
			},
		})
	}

	minBefore, maxBefore := before.MinLevel, before.MaxLevel
	minAfter, maxAfter := inv.MinLevel, inv.MaxLevel
	if err := s.audit.RecordInventoryChange(
		inv.ProductID, inv.Location, actor,
		before.Quantity, inv.Quantity,
		ThresholdSnapshot{MinLevel: &minBefore, MaxLevel: &maxBefore},
		ThresholdSnapshot{MinLevel: &minAfter, MaxLevel: &maxAfter},
		req.Note,
	); err != nil {
		return inv, err
	}

	return inv, nil
}

func (s *inventoryService) Logs(productID uuid.UUID) ([]model.InventoryLog, error) {
	return s.audit.InventoryLogs(productID)
}
