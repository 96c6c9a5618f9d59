package server

import (
	"cineverse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetSubtitles lists a post's subtitles, viewer-visibility checked.
func (s *Server) GetSubtitles(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	detail, err := s.postService.GetPost(c.UserContext(), postID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": detail.Subtitles})
}

// CreateSubtitle attaches a subtitle file reference to a post
func (s *Server) CreateSubtitle(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Language string `json:"language"`
		FileURL  string `json:"file_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	subtitle, err := s.postService.AddSubtitle(c.UserContext(), currentUserID(c), postID, req.Language, req.FileURL)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subtitle)
}

// DeleteSubtitle removes a subtitle; uploader or super admin only
func (s *Server) DeleteSubtitle(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeleteSubtitle(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
