package server

import (
	"cineverse/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGroups lists all active groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupService.ListGroups(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": groups})
}

// GetGroupBySlug returns a single group by its slug
func (s *Server) GetGroupBySlug(c *fiber.Ctx) error {
	group, err := s.groupService.GetGroup(c.UserContext(), c.Params("slug"))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(group)
}

// GetMyMemberships lists the authenticated user's group memberships
func (s *Server) GetMyMemberships(c *fiber.Ctx) error {
	memberships, err := s.groupService.MyMemberships(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"items": memberships})
}

// JoinGroup adds the authenticated user to a group
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	if err := s.groupService.JoinGroup(c.UserContext(), currentUserID(c), c.Params("slug")); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LeaveGroup removes the authenticated user from a group
func (s *Server) LeaveGroup(c *fiber.Ctx) error {
	if err := s.groupService.LeaveGroup(c.UserContext(), currentUserID(c), c.Params("slug")); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
