package records

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/timeeasy/backend/pkg/db/models"
	pkgerrors "github.com/timeeasy/backend/pkg/errors"
	"github.com/timeeasy/backend/pkg/pagination"
)

// ListQuery carries the caller scope and optional filters for a listing.
type ListQuery struct {
	OwnerID  *uint
	Name     *string
	Category *string
	Type     *string
	Page     pagination.Params
}

// Service defines the behavior needed by the records controller.
type Service interface {
	Create(ctx context.Context, ownerID uint, payload RecordPayload) (*RecordDTO, error)
	List(ctx context.Context, query ListQuery) (*pagination.Envelope, error)
	Update(ctx context.Context, id uint, payload RecordPayload) (*RecordDTO, error)
	Delete(ctx context.Context, id uint) error
}

type recordRepository interface {
	Create(ctx context.Context, record *models.LeaveOvertime) error
	FindByID(ctx context.Context, id uint) (*models.LeaveOvertime, error)
	Save(ctx context.Context, record *models.LeaveOvertime) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.LeaveOvertime, int64, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	records recordRepository
	users   userFinder
}

// ServiceParams bundles the dependencies required to build a records service.
type ServiceParams struct {
	RecordRepo recordRepository
	UserRepo   userFinder
}

// NewService constructs a records service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.RecordRepo == nil {
		return nil, fmt.Errorf("record repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{records: params.RecordRepo, users: params.UserRepo}, nil
}

// Create validates the payload, stamps ownership from the resolved user, and
// persists a new record. The owner's name is snapshotted at write time.
func (s *service) Create(ctx context.Context, ownerID uint, payload RecordPayload) (*RecordDTO, error) {
	fields, err := payload.ValidateCreate()
	if err != nil {
		return nil, err
	}

	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup owner")
	}

	record := &models.LeaveOvertime{
		UserID:         owner.ID,
		Name:           owner.Name,
		Category:       fields.Category,
		Type:           fields.Type,
		Reason:         fields.Reason,
		StartTime:      fields.StartTime,
		EndTime:        fields.EndTime,
		Duration:       fields.Duration,
		AdditionalInfo: fields.AdditionalInfo,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create record")
	}
	return FromModel(record), nil
}

// List composes the scope and optional equality filters, then returns the
// pagination envelope for the requested page. A scope naming a vanished user
// fails with not-found rather than returning an empty page.
func (s *service) List(ctx context.Context, query ListQuery) (*pagination.Envelope, error) {
	if query.OwnerID != nil {
		if _, err := s.users.FindByID(ctx, *query.OwnerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup owner")
		}
	}

	filter := ListFilter{
		UserID: query.OwnerID,
		Name:   query.Name,
	}
	if query.Category != nil {
		category, err := parseCategory(*query.Category)
		if err != nil {
			return nil, err
		}
		filter.Category = &category
	}
	if query.Type != nil {
		recordType, err := parseType(*query.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &recordType
	}

	rows, total, err := s.records.List(ctx, filter, query.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list records")
	}

	envelope := pagination.NewEnvelope(query.Page, total, FromModels(rows))
	return &envelope, nil
}

// Update merges the partial payload over the stored record. Ownership fields
// are never taken from the payload. An invalid patch leaves the stored record
// untouched.
func (s *service) Update(ctx context.Context, id uint, payload RecordPayload) (*RecordDTO, error) {
	record, err := s.findRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := payload.ApplyTo(record); err != nil {
		return nil, err
	}

	if err := s.records.Save(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save record")
	}
	return FromModel(record), nil
}

// Delete removes a record by id.
func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete record")
	}
	return nil
}

func (s *service) findRecord(ctx context.Context, id uint) (*models.LeaveOvertime, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load record")
	}
	return record, nil
}
