package repository

import (
	"context"
	"fmt"
	"testing"

	"cineverse/internal/database"
	"cineverse/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a throwaway in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

var userSeq int

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGroup(t *testing.T, db *gorm.DB, slug string, status models.GroupStatus) *models.Group {
	t.Helper()
	group := &models.Group{
		Name:   "Group " + slug,
		Slug:   slug,
		Status: status,
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func addMember(t *testing.T, db *gorm.DB, groupID, userID uint, status models.GroupMemberStatus) {
	t.Helper()
	require.NoError(t, db.Create(&models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.GroupRoleMember,
		Status:  status,
	}).Error)
}

func createPost(t *testing.T, db *gorm.DB, mutate func(*models.Post)) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:      "Untitled",
		Type:       models.PostTypeMovie,
		Status:     models.PostStatusPublished,
		Visibility: models.VisibilityPublic,
		AuthorID:   createUser(t, db, models.RoleUser).ID,
		Year:       2020,
	}
	if mutate != nil {
		mutate(post)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func testCtx() context.Context {
	return context.Background()
}
