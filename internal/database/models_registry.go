package database

import "postbook/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Users come first: posts.user_id references users.id.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Post{},
	}
}
