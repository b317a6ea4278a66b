package server

import (
	"strconv"

	"vyaparify/internal/models"
	"vyaparify/internal/repository"
	"vyaparify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAds handles GET /api/ads
// @Summary Search ads
// @Description List ads matching optional search, category, condition, location, and price filters
// @Tags ads
// @Produce json
// @Param search query string false "Substring match on title or description"
// @Param category query string false "Exact category"
// @Param condition query string false "Item condition"
// @Param location query string false "Location substring"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param sort query string false "Sort order (newest, price_low, price_high)"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Ad
// @Failure 400 {object} models.ErrorResponse
// @Router /ads [get]
func (s *Server) GetAds(c *fiber.Ctx) error {
	filter := repository.AdFilter{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
		Sort:      c.Query("sort"),
	}

	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("minPrice must be a number"))
		}
		filter.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("maxPrice must be a number"))
		}
		filter.MaxPrice = &v
	}

	page := parsePagination(c, 20)

	ads, err := s.adService.SearchAds(c.Context(), service.SearchAdsInput{
		Filter: filter,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(ads)
}

// GetAd handles GET /api/ads/:id
// @Summary Get ad by ID
// @Tags ads
// @Produce json
// @Param id path int true "Ad ID"
// @Success 200 {object} models.Ad
// @Failure 404 {object} models.ErrorResponse
// @Router /ads/{id} [get]
func (s *Server) GetAd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ad, err := s.adService.GetAd(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(ad)
}

// PostAd handles POST /api/ads/post
// @Summary Post a new ad
// @Tags ads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateAdInput true "Ad details"
// @Success 201 {object} models.Ad
// @Failure 400 {object} models.ErrorResponse
// @Router /ads/post [post]
func (s *Server) PostAd(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Category    string   `json:"category"`
		Condition   string   `json:"condition"`
		Location    string   `json:"location"`
		Images      []string `json:"images"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := c.Locals("userID").(uint)

	ad, err := s.adService.CreateAd(c.Context(), service.CreateAdInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Condition:   req.Condition,
		Location:    req.Location,
		Images:      req.Images,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(ad)
}

// DeleteAd handles DELETE /api/ads/:id
// @Summary Delete an ad
// @Description Delete an ad; only the owner or an admin may delete
// @Tags ads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /ads/{id} [delete]
func (s *Server) DeleteAd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)

	if err := s.adService.DeleteAd(c.Context(), service.DeleteAdInput{
		UserID: userID,
		AdID:   id,
	}); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Ad deleted"})
}
