package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"github.com/petroerp/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormContractRepository implements trade.ContractRepository using GORM
type GormContractRepository struct {
	gormRepository[trade.Contract]
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{gormRepository[trade.Contract]{
		db:            db,
		searchColumns: []string{"contract_number", "counterparty", "product_grade"},
	}}
}

// FindByNumber finds a contract by its contract number
func (r *GormContractRepository) FindByNumber(ctx context.Context, contractNumber string) (*trade.Contract, error) {
	var contract trade.Contract
	if err := r.db.WithContext(ctx).
		Where("contract_number = ?", contractNumber).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// ExistsByNumber reports whether a contract with the number exists
func (r *GormContractRepository) ExistsByNumber(ctx context.Context, contractNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.Contract{}).
		Where("contract_number = ?", contractNumber).
		Count(&count).Error
	return count > 0, err
}

// FindByStatus finds contracts in the given status
func (r *GormContractRepository) FindByStatus(ctx context.Context, status trade.ContractStatus, filter shared.Filter) ([]trade.Contract, error) {
	var contracts []trade.Contract
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Contract{}).Where("status = ?", status),
		filter,
	)
	if err := query.Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// GormShipmentRepository implements trade.ShipmentRepository using GORM
type GormShipmentRepository struct {
	gormRepository[trade.Shipment]
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{gormRepository[trade.Shipment]{
		db:            db,
		searchColumns: []string{"contract_number", "vessel_name", "bill_of_lading"},
	}}
}

// FindByContract finds shipments nominated against a contract
func (r *GormShipmentRepository) FindByContract(ctx context.Context, contractID uuid.UUID, filter shared.Filter) ([]trade.Shipment, error) {
	var shipments []trade.Shipment
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Shipment{}).Where("contract_id = ?", contractID),
		filter,
	)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindByBillOfLading finds a shipment by its BL number
func (r *GormShipmentRepository) FindByBillOfLading(ctx context.Context, blNumber string) (*trade.Shipment, error) {
	var shipment trade.Shipment
	if err := r.db.WithContext(ctx).
		Where("bill_of_lading = ?", blNumber).
		First(&shipment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

var (
	_ trade.ContractRepository = (*GormContractRepository)(nil)
	_ trade.ShipmentRepository = (*GormShipmentRepository)(nil)
)
