package service

import (
	"log"

	"go-stockledger/internal/model"
	"go-stockledger/internal/repository"

	"github.com/google/uuid"
)

// ThresholdSnapshot carries the min/max levels on one side of an inventory
// change; nil fields mean the threshold was not tracked at that point.
type ThresholdSnapshot struct {
	MinLevel *int
	MaxLevel *int
}

// AuditRecorder appends immutable before/after records for direct-edit
// paths. It is called only after the primary write has committed: a
// recording failure is reported to the caller but never rolls the entity
// mutation back.
type AuditRecorder interface {
	RecordProductChange(productID uuid.UUID, actor Actor, before, after *model.ProductSnapshot, note string) error
	RecordInventoryChange(productID uuid.UUID, location string, actor Actor, beforeQty, afterQty int, before, after ThresholdSnapshot, note string) error
	ProductLogs(productID uuid.UUID) ([]model.ProductLog, error)
	InventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error)
}

type auditRecorder struct {
	auditRepo repository.AuditRepository
}

func NewAuditRecorder(auditRepo repository.AuditRepository) AuditRecorder {
	return &auditRecorder{auditRepo: auditRepo}
}

func (s *auditRecorder) RecordProductChange(productID uuid.UUID, actor Actor, before, after *model.ProductSnapshot, note string) error {
	entry := &model.ProductLog{
		ProductID: productID,
		Before:    before,
		After:     after,
		Note:      note,
		ActorID:   actor.IDRef(),
	}
	entry.CreatedBy = actor.ID.String()
	if err := s.auditRepo.CreateProductLog(entry); err != nil {
		// The product change is already durable; report the gap instead of
		// hiding it.
		log.Printf("audit: product log for %s not recorded: %v", productID, err)
		return err
	}
	return nil
}

func (s *auditRecorder) RecordInventoryChange(productID uuid.UUID, location string, actor Actor, beforeQty, afterQty int, before, after ThresholdSnapshot, note string) error {
	entry := &model.InventoryLog{
		ProductID:      productID,
		Location:       location,
		QuantityBefore: beforeQty,
		QuantityAfter:  afterQty,
		MinLevelBefore: before.MinLevel,
		MinLevelAfter:  after.MinLevel,
		MaxLevelBefore: before.MaxLevel,
		MaxLevelAfter:  after.MaxLevel,
		Note:           note,
		ActorID:        actor.IDRef(),
	}
	entry.CreatedBy = actor.ID.String()
	if err := s.auditRepo.CreateInventoryLog(entry); err != nil {
		log.Printf("audit: inventory log for %s@%s not recorded: %v", productID, location, err)
		return err
	}
	return nil
}

func (s *auditRecorder) ProductLogs(productID uuid.UUID) ([]model.ProductLog, error) {
	return s.auditRepo.ProductLogs(productID)
}

func (s *auditRecorder) InventoryLogs(productID uuid.UUID) ([]model.InventoryLog, error) {
	return s.auditRepo.InventoryLogs(productID)
}
