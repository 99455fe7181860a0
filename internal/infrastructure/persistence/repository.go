package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/petroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// gormRepository provides the generic CRUD surface shared by every aggregate
// repository. Concrete repositories embed it and add their specific finders.
type gormRepository[T any] struct {
	db *gorm.DB

	// Columns matched by Filter.Search with ILIKE. Empty disables search.
	searchColumns []string
}

// FindByID finds an entity by its ID
func (r *gormRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAll finds all entities matching the filter
func (r *gormRepository[T]) FindAll(ctx context.Context, filter shared.Filter) ([]T, error) {
	var entities []T
	query := r.applyFilter(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save creates or updates an entity
func (r *gormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete removes an entity by ID
func (r *gormRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts entities matching the filter, ignoring pagination
func (r *gormRepository[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyWhere(r.db.WithContext(ctx).Model(new(T)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormRepository[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyWhere(query, filter)

	orderBy := sanitizeColumn(filter.OrderBy)
	if orderBy == "" {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	return query.Offset(filter.Offset()).Limit(filter.Limit())
}

func (r *gormRepository[T]) applyWhere(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		if col := sanitizeColumn(key); col != "" {
			query = query.Where(fmt.Sprintf("%s = ?", col), value)
		}
	}

	if filter.Search != "" && len(r.searchColumns) > 0 {
		pattern := "%" + filter.Search + "%"
		clauses := make([]string, len(r.searchColumns))
		args := make([]interface{}, len(r.searchColumns))
		for i, col := range r.searchColumns {
			clauses[i] = fmt.Sprintf("%s ILIKE ?", col)
			args[i] = pattern
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}
	return query
}

// sanitizeColumn rejects anything that is not a plain column identifier,
// keeping filter input out of the SQL text.
func sanitizeColumn(name string) string {
	if name == "" {
		return ""
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return ""
		}
	}
	return name
}
