package repository

import (
	"context"

	"cineverse/internal/cache"
	"cineverse/internal/models"

	"gorm.io/gorm"
)

// GroupRepository defines the interface for group and membership operations.
type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	ListActive(ctx context.Context) ([]*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	ActiveGroupIDs(ctx context.Context, userID uint) ([]uint, error)
	MemberRole(ctx context.Context, groupID, userID uint) (models.GroupMemberRole, bool, error)
	ListMemberships(ctx context.Context, userID uint) ([]*models.GroupMember, error)
	Join(ctx context.Context, groupID, userID uint) error
	Leave(ctx context.Context, groupID, userID uint) error
}

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepository) ListActive(ctx context.Context) ([]*models.Group, error) {
	var groups []*models.Group
	err := r.db.WithContext(ctx).
		Where("status = ?", models.GroupStatusActive).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	err := cache.Aside(ctx, cache.GroupKey(slug), &group, cache.GroupTTL, func() error {
		return r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByID(ctx context.Context, id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ActiveGroupIDs feeds the visibility resolver: only ACTIVE memberships in
// non-banned groups grant access to GROUP_ONLY posts.
func (r *groupRepository) ActiveGroupIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.GroupMember{}).
		Joins("JOIN groups ON groups.id = group_members.group_id").
		Where("group_members.user_id = ? AND group_members.status = ?", userID, models.MemberStatusActive).
		Where("groups.status <> ?", models.GroupStatusBanned).
		Pluck("group_members.group_id", &ids).Error
	return ids, err
}

func (r *groupRepository) MemberRole(ctx context.Context, groupID, userID uint) (models.GroupMemberRole, bool, error) {
	var member models.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, models.MemberStatusActive).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return member.Role, true, nil
}

func (r *groupRepository) ListMemberships(ctx context.Context, userID uint) ([]*models.GroupMember, error) {
	var memberships []*models.GroupMember
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&memberships).Error
	return memberships, err
}

// Join is idempotent: re-joining while a row exists leaves it untouched, so a
// BANNED membership cannot be washed away by joining again.
func (r *groupRepository) Join(ctx context.Context, groupID, userID uint) error {
	member := models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.GroupRoleMember,
		Status:  models.MemberStatusActive,
	}
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		FirstOrCreate(&member).Error
}

func (r *groupRepository) Leave(ctx context.Context, groupID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{}).Error
}
