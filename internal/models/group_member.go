package models

import "time"

// GroupMemberRole defines a member's role within a group.
type GroupMemberRole string

const (
	// GroupRoleAdmin administers the group.
	GroupRoleAdmin GroupMemberRole = "ADMIN"
	// GroupRoleModerator moderates group content.
	GroupRoleModerator GroupMemberRole = "MODERATOR"
	// GroupRoleMember is the default membership role.
	GroupRoleMember GroupMemberRole = "MEMBER"
)

// GroupMemberStatus defines whether a membership is in effect.
type GroupMemberStatus string

const (
	// MemberStatusActive grants visibility into the group's posts.
	MemberStatusActive GroupMemberStatus = "ACTIVE"
	// MemberStatusPending awaits approval and grants nothing.
	MemberStatusPending GroupMemberStatus = "PENDING"
	// MemberStatusBanned revokes access without deleting history.
	MemberStatusBanned GroupMemberStatus = "BANNED"
)

// GroupMember links a user to a group. Only ACTIVE memberships make a
// GROUP_ONLY post visible to the user.
type GroupMember struct {
	GroupID   uint              `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	Group     *Group            `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	UserID    uint              `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User      *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      GroupMemberRole   `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	Status    GroupMemberStatus `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
