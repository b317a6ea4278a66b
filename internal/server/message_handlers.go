package server

import (
	"vyaparify/internal/models"
	"vyaparify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages
// @Summary Send a message
// @Description Send a message to another user about an ad
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{receiverId=int,adId=int,content=string} true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Router /messages [post]
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		ReceiverID uint   `json:"receiverId"`
		AdID       uint   `json:"adId"`
		Content    string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	senderID := c.Locals("userID").(uint)

	msg, err := s.messageService.Send(c.Context(), service.SendMessageInput{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		AdID:       req.AdID,
		Content:    req.Content,
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetInbox handles GET /api/messages/inbox
// @Summary Get inbox
// @Description List messages received by the authenticated user, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Message
// @Router /messages/inbox [get]
func (s *Server) GetInbox(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	page := parsePagination(c, 50)

	msgs, err := s.messageService.Inbox(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(msgs)
}

// GetThread handles GET /api/messages/:userId/:adId
// @Summary Get conversation thread
// @Description List the full conversation with another user about an ad, oldest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Other participant's user ID"
// @Param adId path int true "Ad ID"
// @Success 200 {array} models.Message
// @Failure 400 {object} models.ErrorResponse
// @Router /messages/{userId}/{adId} [get]
func (s *Server) GetThread(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	adID, err := s.parseID(c, "adId")
	if err != nil {
		return nil
	}

	callerID := c.Locals("userID").(uint)

	msgs, err := s.messageService.Thread(c.Context(), callerID, otherID, adID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(msgs)
}

// MarkMessageRead handles POST /api/messages/:id/read
// @Summary Mark a message as read
// @Description Mark a received message as read; only the receiver may do this
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} models.Message
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /messages/{id}/read [post]
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	callerID := c.Locals("userID").(uint)

	msg, err := s.messageService.MarkRead(c.Context(), id, callerID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(msg)
}
