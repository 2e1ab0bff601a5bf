package service

import (
	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"
	"go-stockledger/internal/ws"
	"go-stockledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionService posts stock movements. The inventory increment and
// the transaction insert commit as one unit: the ledger and the
// transaction history can never diverge.
type TransactionService interface {
	PostTransaction(req *PostTransactionRequest, actor Actor) (*PostTransactionResult, error)
	GetAllTransactions() ([]model.StockTransaction, error)
}

type PostTransactionRequest struct {
	Type      model.TransactionType `json:"type" validate:"required"`
	ProductID uuid.UUID             `json:"productId" validate:"uuid_required"`
	Location  string                `json:"location"`
	Quantity  int                   `json:"quantity"`
	Note      string                `json:"note"`
}

type PostTransactionResult struct {
	Transaction *model.StockTransaction `json:"transaction"`
	Inventory   *model.Inventory        `json:"inventory"`
}

type transactionService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txRepo        repository.TransactionRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewTransactionService(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	txRepo repository.TransactionRepository,
	db *gorm.DB,
	hub *ws.Hub,
) TransactionService {
	return &transactionService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txRepo:        txRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *transactionService) PostTransaction(req *PostTransactionRequest, actor Actor) (*PostTransactionResult, error) {
	if !req.Type.IsValid() {
		return nil, ErrInvalidTransactionType
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	location := req.Location
	if location == "" {
		location = model.DefaultLocation
	}
	delta := req.Type.EffectiveDelta(req.Quantity)

	record := &model.StockTransaction{
		Type:      req.Type,
		ProductID: req.ProductID,
		Location:  location,
		Quantity:  delta, // effective, sign-normalized
		Note:      req.Note,
		ActorID:   actor.IDRef(),
	}
	record.CreatedBy = actor.ID.String()
	record.UpdatedBy = actor.ID.String()

	var inventory *model.Inventory

	// One atomic unit: the stock increment and the transaction insert
	// either both commit or neither does.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.productRepo.FindByIDTx(tx, req.ProductID); err != nil {
			return ErrProductNotFound
		}

		var err error
		inventory, err = s.inventoryRepo.ApplyDelta(tx, req.ProductID, location, delta, actor.ID.String())
		if err != nil {
			return err
		}

		return s.txRepo.Create(tx, record)
	})
	if err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "transaction_posted",
			"transaction": map[string]interface{}{
				"id":        record.ID,
				"type":      record.Type,
				"quantity":  record.Quantity,
				"productId": record.ProductID,
				"location":  record.Location,
				"newStock":  inventory.Quantity,
			},
			"user": map[string]interface{}{
				"id":   actor.ID,
				"name": actor.Name,
			},
		})
	}

	return &PostTransactionResult{
		Transaction: record,
		Inventory:   inventory,
	}, nil
}

func (s *transactionService) GetAllTransactions() ([]model.StockTransaction, error) {
	return s.txRepo.FindAll()
}
