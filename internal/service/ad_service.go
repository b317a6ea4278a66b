// Package service contains the business logic for the application.
package service

import (
	"context"
	"strings"

	"vyaparify/internal/models"
	"vyaparify/internal/observability"
	"vyaparify/internal/repository"
)

// AdService provides ad creation, lookup, search, and deletion logic.
type AdService struct {
	adRepo  repository.AdRepository
	isAdmin func(ctx context.Context, userID uint) (bool, error)
}

// CreateAdInput is the payload for posting a new ad.
type CreateAdInput struct {
	UserID      uint
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	Location    string
	Images      []string
}

// SearchAdsInput carries the query criteria for listing ads.
type SearchAdsInput struct {
	Filter repository.AdFilter
	Limit  int
	Offset int
}

// DeleteAdInput identifies the ad to delete and who is asking.
type DeleteAdInput struct {
	UserID uint
	AdID   uint
}

// NewAdService returns a new AdService.
func NewAdService(
	adRepo repository.AdRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *AdService {
	return &AdService{
		adRepo:  adRepo,
		isAdmin: isAdmin,
	}
}

// SearchAds lists ads matching the filter. All present criteria are combined
// with AND; an empty filter returns the newest ads.
func (s *AdService) SearchAds(ctx context.Context, in SearchAdsInput) ([]*models.Ad, error) {
	f := in.Filter
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return nil, models.NewValidationError("minPrice must be non-negative")
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return nil, models.NewValidationError("maxPrice must be non-negative")
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, models.NewValidationError("minPrice must not exceed maxPrice")
	}

	ads, err := s.adRepo.List(ctx, f, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	sort := f.Sort
	if sort != models.SortPriceLow && sort != models.SortPriceHigh {
		sort = models.SortNewest
	}
	observability.AdSearches.WithLabelValues(sort).Inc()
	return ads, nil
}

// GetAd returns a single ad with its seller loaded.
func (s *AdService) GetAd(ctx context.Context, id uint) (*models.Ad, error) {
	return s.adRepo.GetByID(ctx, id)
}

// GetUserAds returns a user's own listings, newest first.
func (s *AdService) GetUserAds(ctx context.Context, userID uint, limit, offset int) ([]*models.Ad, error) {
	return s.adRepo.GetByUserID(ctx, userID, limit, offset)
}

const (
	maxAdTitleLen       = 200
	maxAdDescriptionLen = 10000
	maxAdImages         = 10
)

// CreateAd validates and persists a new listing owned by in.UserID.
func (s *AdService) CreateAd(ctx context.Context, in CreateAdInput) (*models.Ad, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)
	location := strings.TrimSpace(in.Location)

	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxAdTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if description == "" {
		return nil, models.NewValidationError("Description is required")
	}
	if len(description) > maxAdDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 10000 characters)")
	}
	if in.Price < 0 {
		return nil, models.NewValidationError("Price must be non-negative")
	}
	if category == "" {
		return nil, models.NewValidationError("Category is required")
	}
	if !models.ValidCondition(models.AdCondition(in.Condition)) {
		return nil, models.NewValidationError("Condition must be one of: new, like-new, good, fair, poor")
	}
	if location == "" {
		return nil, models.NewValidationError("Location is required")
	}

	images := make([]string, 0, len(in.Images))
	for _, img := range in.Images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			images = append(images, trimmed)
		}
	}
	if len(images) == 0 {
		return nil, models.NewValidationError("At least one image is required")
	}
	if len(images) > maxAdImages {
		return nil, models.NewValidationError("Too many images (max 10)")
	}

	ad := &models.Ad{
		Title:       title,
		Description: description,
		Price:       in.Price,
		Category:    category,
		Condition:   models.AdCondition(in.Condition),
		Location:    location,
		Images:      images,
		UserID:      in.UserID,
	}
	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	observability.AdsPosted.WithLabelValues(category).Inc()
	return ad, nil
}

// DeleteAd removes a listing. Only the owner or an admin may delete.
func (s *AdService) DeleteAd(ctx context.Context, in DeleteAdInput) error {
	ad, err := s.adRepo.GetByID(ctx, in.AdID)
	if err != nil {
		return err
	}

	if ad.UserID != in.UserID {
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return models.NewInternalError(err)
		}
		if !admin {
			return models.NewUnauthorizedError("You can only delete your own ads")
		}
	}

	return s.adRepo.Delete(ctx, in.AdID)
}
