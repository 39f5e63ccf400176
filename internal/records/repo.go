package records

import (
	"context"

	"gorm.io/gorm"

	"github.com/timeeasy/backend/pkg/db/models"
	"github.com/timeeasy/backend/pkg/enums"
	"github.com/timeeasy/backend/pkg/pagination"
)

// ListFilter holds the conjunctive equality filters for a listing query. Nil
// fields impose no constraint.
type ListFilter struct {
	UserID   *uint
	Name     *string
	Category *enums.RecordCategory
	Type     *enums.RecordType
}

// Repository exposes leave/overtime persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a records repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the record, assigning its id.
func (r *Repository) Create(ctx context.Context, record *models.LeaveOvertime) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID loads a record by its primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.LeaveOvertime, error) {
	var record models.LeaveOvertime
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Save persists all fields of an already loaded record.
func (r *Repository) Save(ctx context.Context, record *models.LeaveOvertime) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes the record by id. Returns gorm.ErrRecordNotFound when no row
// matched.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.LeaveOvertime{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of matching records ordered by id descending, plus
// the total count of rows satisfying the filter regardless of pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.LeaveOvertime, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.LeaveOvertime{})
	query = applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	normalized := params.Normalize()
	var rows []models.LeaveOvertime
	err := query.
		Order("id DESC").
		Limit(normalized.PerPage).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func applyFilter(query *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.Category != nil {
		query = query.Where("leave_or_overtime = ?", *filter.Category)
	}
	if filter.Type != nil {
		query = query.Where("leave_or_overtime_type = ?", *filter.Type)
	}
	return query
}
