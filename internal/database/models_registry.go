package database

import "cineverse/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Series{},
		&models.Post{},
		&models.Review{},
		&models.Reaction{},
		&models.FavoritePost{},
		&models.Subtitle{},
		&models.MediaLink{},
	}
}
