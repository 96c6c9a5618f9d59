package service

import (
	"context"
	"strings"

	"cineverse/internal/models"
	"cineverse/internal/repository"
)

type GroupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.groupRepo.ListActive(ctx)
}

func (s *GroupService) GetGroup(ctx context.Context, slug string) (*models.Group, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, models.NewValidationError("Group slug is required")
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewNotFoundError("Group", slug)
	}
	return group, nil
}

func (s *GroupService) MyMemberships(ctx context.Context, userID uint) ([]*models.GroupMember, error) {
	if userID == 0 {
		return nil, models.NewNotAuthenticatedError("You must be signed in to list memberships")
	}
	return s.groupRepo.ListMemberships(ctx, userID)
}

func (s *GroupService) JoinGroup(ctx context.Context, userID uint, slug string) error {
	if userID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to join a group")
	}
	group, err := s.GetGroup(ctx, slug)
	if err != nil {
		return err
	}
	if group.Status != models.GroupStatusActive {
		return models.NewNotAuthorizedError("This group is not accepting members")
	}
	return s.groupRepo.Join(ctx, group.ID, userID)
}

func (s *GroupService) LeaveGroup(ctx context.Context, userID uint, slug string) error {
	if userID == 0 {
		return models.NewNotAuthenticatedError("You must be signed in to leave a group")
	}
	group, err := s.GetGroup(ctx, slug)
	if err != nil {
		return err
	}
	if _, ok, err := s.groupRepo.MemberRole(ctx, group.ID, userID); err != nil {
		return err
	} else if !ok {
		return models.NewNotFoundError("Membership", group.ID)
	}
	return s.groupRepo.Leave(ctx, group.ID, userID)
}
