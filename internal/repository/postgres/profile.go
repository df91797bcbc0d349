package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nkripta/nkripta/internal/domain/profile"
	ierr "github.com/nkripta/nkripta/internal/errors"
	"github.com/nkripta/nkripta/internal/logger"
	"github.com/nkripta/nkripta/internal/types"
)

type profileRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepository(db *gorm.DB, log *logger.Logger) profile.Repository {
	return &profileRepository{db: db, log: log}
}

func (r *profileRepository) Create(ctx context.Context, p *profile.Profile) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ierr.WithError(err).
				WithHintf("A profile with email %s already exists", p.Email).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, id string) (*profile.Profile, error) {
	return r.getBy(ctx, "id = ?", id, "Profile "+id+" does not exist")
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	return r.getBy(ctx, "email = ?", email, "No profile with this email")
}

func (r *profileRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*profile.Profile, error) {
	return r.getBy(ctx, "stripe_customer_id = ?", customerID, "No profile for this billing customer")
}

// GetByIDPrefix matches a profile by the leading fragment of its id. The
// fragment comes from synthetic billing ids which embed only the first
// eight characters of the owning profile id.
func (r *profileRepository) GetByIDPrefix(ctx context.Context, prefix string) (*profile.Profile, error) {
	if prefix == "" {
		return nil, ierr.NewError("empty profile id prefix").
			WithHint("Profile reference is malformed").
			Mark(ierr.ErrValidation)
	}
	return r.getBy(ctx, "id LIKE ?", prefix+"%", "No profile matches this reference")
}

func (r *profileRepository) getBy(ctx context.Context, query string, arg interface{}, hint string) (*profile.Profile, error) {
	var p profile.Profile
	err := r.db.WithContext(ctx).First(&p, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ierr.NewError("profile not found").
				WithHint(hint).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch profile").
			Mark(ierr.ErrDatabase)
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *profile.Profile) error {
	result := r.db.WithContext(ctx).Model(&profile.Profile{}).
		Where("id = ?", p.ID).
		Updates(p)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ierr.WithError(result.Error).
				WithHintf("A profile with email %s already exists", p.Email).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(result.Error).
			WithHint("Failed to update profile").
			Mark(ierr.ErrDatabase)
	}
	if result.RowsAffected == 0 {
		return ierr.NewError("profile not found").
			WithHintf("Profile %s does not exist", p.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, organizationID string, filter *types.QueryFilter) ([]*profile.Profile, error) {
	var profiles []*profile.Profile
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}
	err := query.
		Offset(filter.GetOffset()).
		Limit(filter.GetLimit()).
		Find(&profiles).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list profiles").
			Mark(ierr.ErrDatabase)
	}
	return profiles, nil
}

func (r *profileRepository) ListAll(ctx context.Context) ([]*profile.Profile, error) {
	var profiles []*profile.Profile
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&profiles).Error
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list profiles").
			Mark(ierr.ErrDatabase)
	}
	return profiles, nil
}

func (r *profileRepository) Count(ctx context.Context, organizationID string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&profile.Profile{})
	if organizationID != "" {
		query = query.Where("organization_id = ?", organizationID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count profiles").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
