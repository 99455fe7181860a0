package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/petroerp/backend/internal/domain/partner"
	"github.com/petroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	gormRepository[partner.Supplier]
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{gormRepository[partner.Supplier]{
		db:            db,
		searchColumns: []string{"code", "name"},
	}}
}

// FindByCode finds a supplier by its code
func (r *GormSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&supplier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// ExistsByCode reports whether a supplier with the code exists
func (r *GormSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&partner.Supplier{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error
	return count > 0, err
}

// GormBuyerRepository implements partner.BuyerRepository using GORM
type GormBuyerRepository struct {
	gormRepository[partner.Buyer]
}

// NewGormBuyerRepository creates a new GormBuyerRepository
func NewGormBuyerRepository(db *gorm.DB) *GormBuyerRepository {
	return &GormBuyerRepository{gormRepository[partner.Buyer]{
		db:            db,
		searchColumns: []string{"code", "name"},
	}}
}

// FindByCode finds a buyer by its code
func (r *GormBuyerRepository) FindByCode(ctx context.Context, code string) (*partner.Buyer, error) {
	var buyer partner.Buyer
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&buyer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &buyer, nil
}

// ExistsByCode reports whether a buyer with the code exists
func (r *GormBuyerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&partner.Buyer{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error
	return count > 0, err
}

var (
	_ partner.SupplierRepository = (*GormSupplierRepository)(nil)
	_ partner.BuyerRepository    = (*GormBuyerRepository)(nil)
)
