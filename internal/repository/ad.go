package repository

import (
	"context"
	"errors"

	"vyaparify/internal/cache"
	"vyaparify/internal/models"
	"vyaparify/internal/observability"

	"gorm.io/gorm"
)

// AdFilter holds the optional criteria for listing ads. Zero values mean
// "not filtered"; all present criteria are combined with AND.
type AdFilter struct {
	Search    string
	Category  string
	Condition string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	Sort      string
}

// AdRepository defines persistence operations for ads.
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id uint) (*models.Ad, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error)
	List(ctx context.Context, filter AdFilter, limit, offset int) ([]*models.Ad, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

type adRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewAdRepository returns a new AdRepository implementation.
func NewAdRepository(db *gorm.DB) AdRepository {
	return &adRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adRepository) GetByID(ctx context.Context, id uint) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&ad, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ad", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ad, nil
}

func (r *adRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error) {
	// Non-nil so an empty result serializes as [] rather than null.
	ads := make([]*models.Ad, 0)
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

func (r *adRepository) List(ctx context.Context, filter AdFilter, limit, offset int) ([]*models.Ad, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "List", "ads")
	defer span.End()
	defer r.metrics.TrackQuery("select", "ads")()

	// Non-nil so an empty result serializes as [] rather than null.
	ads := make([]*models.Ad, 0)
	base := r.applyFilters(r.db.WithContext(ctx).Preload("User"), filter)
	if err := r.applySort(base, filter.Sort).
		Limit(limit).
		Offset(offset).
		Find(&ads).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ads, nil
}

// applyFilters appends WHERE clauses for every present criterion. Search
// matches title or description case-insensitively; category and condition
// are exact; location is a case-insensitive substring match.
func (r *adRepository) applyFilters(db *gorm.DB, filter AdFilter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" {
		db = db.Where("condition = ?", filter.Condition)
	}
	if filter.Location != "" {
		db = db.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinPrice != nil {
		db = db.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		db = db.Where("price <= ?", *filter.MaxPrice)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort type.
func (r *adRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case models.SortPriceLow:
		return db.Order("price ASC, created_at DESC")
	case models.SortPriceHigh:
		return db.Order("price DESC, created_at DESC")
	default: // "newest" and anything unrecognized
		return db.Order("created_at DESC, id DESC")
	}
}

func (r *adRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Ad{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateAd(ctx, id)
	return nil
}

func (r *adRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Ad{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
