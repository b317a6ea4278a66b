package server

import (
	"vyaparify/internal/models"
	"vyaparify/internal/repository"
	"vyaparify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminGetUsers handles GET /api/admin/users
// @Summary List all users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.User
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/users [get]
func (s *Server) AdminGetUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	users, err := s.userService.ListUsers(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(users)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
// @Summary Delete a user (admin)
// @Description Delete a user account; admins cannot delete themselves
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/users/{id} [delete]
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	callerID := c.Locals("userID").(uint)

	if err := s.userService.DeleteUser(c.Context(), callerID, id); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AdminGetAds handles GET /api/admin/ads
// @Summary List all ads (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Ad
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/ads [get]
func (s *Server) AdminGetAds(c *fiber.Ctx) error {
	page := parsePagination(c, 50)

	ads, err := s.adService.SearchAds(c.Context(), service.SearchAdsInput{
		Filter: repository.AdFilter{},
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(ads)
}

// AdminDeleteAd handles DELETE /api/admin/ads/:id
// @Summary Delete any ad (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ad ID"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/ads/{id} [delete]
func (s *Server) AdminDeleteAd(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := c.Locals("userID").(uint)

	// Admin status was already checked by AdminRequired; DeleteAd re-checks
	// ownership and falls through to the admin path.
	if err := s.adService.DeleteAd(c.Context(), service.DeleteAdInput{
		UserID: userID,
		AdID:   id,
	}); err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"message": "Ad deleted"})
}
