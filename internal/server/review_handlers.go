package server

import (
	"cineverse/internal/models"
	"cineverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetReviews returns a post's review tree, capped at three levels. The
// optional token narrows visibility the same way GetPost does.
func (s *Server) GetReviews(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)
	reviews, err := s.reviewService.ListReviews(c.UserContext(), postID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": reviews})
}

// CreateReview creates a review or a reply under an existing review
func (s *Server) CreateReview(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Comment  string `json:"comment"`
		Rating   int    `json:"rating"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.UserContext(), service.CreateReviewInput{
		UserID:   currentUserID(c),
		PostID:   postID,
		Comment:  req.Comment,
		Rating:   req.Rating,
		ParentID: req.ParentID,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// DeleteReview removes a review and its whole reply subtree
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reviewService.DeleteReview(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
