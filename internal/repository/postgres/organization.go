package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nkripta/nkripta/internal/domain/organization"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/types"
)

type organizationRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationRepository(db *gorm.DB, log *logger.Logger) organization.Repository {
	return &organizationRepository{db: db, log: log}
}

func (r *organizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	if err := r.db.WithContext(ctx).Create(org).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHintf("An organization with slug %s already exists", org.Slug).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create organization").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *organizationRepository) Get(ctx context.Context, id string) (*organization.Organization, error) {
	var org organization.Organization
	err := r.db.WithContext(ctx).First(&org, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("organization not found").
				WithHintf("Organization %s does not exist", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch organization").
			Mark(ierr.ErrDatabase)
	}
	return &org, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*organization.Organization, error) {
	var org organization.Organization
	err := r.db.WithContext(ctx).First(&org, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("organization not found").
				WithHintf("No organization with slug %s", slug).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch organization").
			Mark(ierr.ErrDatabase)
	}
	return &org, nil
}

func (r *organizationRepository) Update(ctx context.Context, org *organization.Organization) error {
	result := r.db.WithContext(ctx).Model(&organization.Organization{}).
		Where("id = ?", org.ID).
		Updates(org)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ierr.WithError(result.Error).
				WithHintf("An organization with slug %s already exists", org.Slug).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(result.Error).
			WithHint("Failed to update organization").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewError("organization not found").
			WithHintf("Organization %s does not exist", org.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*organization.Organization, error) {
	var orgs []*organization.Organization
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(filter.GetOffset()).
		Limit(filter.GetLimit()).
		Find(&orgs).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list organizations").
			Mark(ierr.ErrDatabase)
	}
	return orgs, nil
}

func (r *organizationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&organization.Organization{}).Count(&count).Error
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count organizations").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
