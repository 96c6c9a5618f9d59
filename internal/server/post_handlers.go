package server

import (
	"errors"

	"cineverse/internal/models"
	"cineverse/internal/service"

	"github.com/gofiber/fiber/v2"
)

type savePostRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	Visibility    string   `json:"visibility"`
	GroupID       *uint    `json:"group_id"`
	Year          int      `json:"year"`
	Genres        []string `json:"genres"`
	IMDbRating    float64  `json:"imdb_rating"`
	Poster        string   `json:"poster"`
	SeriesID      *uint    `json:"series_id"`
	OrderInSeries int      `json:"order_in_series"`
	MediaLinks    []struct {
		Quality string `json:"quality"`
		URL     string `json:"url"`
	} `json:"media_links"`
}

func (r savePostRequest) toInput(userID, postID uint) service.SavePostInput {
	in := service.SavePostInput{
		UserID:        userID,
		PostID:        postID,
		Title:         r.Title,
		Description:   r.Description,
		Type:          models.PostType(r.Type),
		Visibility:    models.PostVisibility(r.Visibility),
		GroupID:       r.GroupID,
		Year:          r.Year,
		Genres:        r.Genres,
		IMDbRating:    r.IMDbRating,
		PosterDataURL: r.Poster,
		SeriesID:      r.SeriesID,
		OrderInSeries: r.OrderInSeries,
	}
	if r.MediaLinks != nil {
		in.MediaLinks = make([]models.MediaLink, 0, len(r.MediaLinks))
		for _, l := range r.MediaLinks {
			in.MediaLinks = append(in.MediaLinks, models.MediaLink{Quality: l.Quality, URL: l.URL})
		}
	}
	return in
}

// GetPosts returns the catalog page visible to the requester.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)

	page, err := s.postService.ListPosts(c.UserContext(), parseListFilters(c, userID))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetPost returns a single post with reviews, subtitles and media links.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	detail, err := s.postService.GetPost(c.UserContext(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(detail)
}

// CreatePost creates a new post in PENDING_APPROVAL
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req savePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	post, err := s.postService.SavePost(c.UserContext(), req.toInput(currentUserID(c), 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits an existing post; the edit goes back through moderation.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req savePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	post, err := s.postService.SavePost(c.UserContext(), req.toInput(currentUserID(c), id))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// UpdatePostStatus handles moderation status changes
func (s *Server) UpdatePostStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}

	err = s.postService.UpdatePostStatus(c.UserContext(), currentUserID(c), id, models.PostStatus(req.Status))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": req.Status})
}

// DeletePost marks a post for deletion, or removes it outright for super admins.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLikePost toggles a like or dislike on a post
func (s *Server) ToggleLikePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	// Default to a like when the body is empty.
	req := struct {
		Like *bool `json:"like"`
	}{}
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewInvalidArgumentError("Invalid request body"))
	}
	like := true
	if req.Like != nil {
		like = *req.Like
	}

	state, err := s.reactionService.ToggleLike(c.UserContext(), currentUserID(c), id, like)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(state)
}

// ToggleFavoritePost toggles the post on the user's favorites list
func (s *Server) ToggleFavoritePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	favorited, err := s.reactionService.ToggleFavorite(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"post_id": id, "favorited": favorited})
}

// GetSeriesPosts lists a series' posts in series order, visibility-filtered.
func (s *Server) GetSeriesPosts(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	userID, _ := s.optionalUserID(c)

	posts, err := s.postService.ListSeriesPosts(c.UserContext(), id, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": posts})
}
