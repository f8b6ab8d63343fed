package database

import (
	"context"
	"fmt"
	"log/slog"

	"postbook/internal/models"
	"postbook/internal/observability"

	"gorm.io/gorm"
)

// Names of the constraints declared on the records.
const (
	ContentLengthCheck = "chk_posts_content_length"
	PostsUserFK        = "fk_users_posts"
)

// SchemaStatus describes which tables and constraints exist in the database.
type SchemaStatus struct {
	Tables      map[string]bool `json:"tables" yaml:"tables"`
	Constraints map[string]bool `json:"constraints" yaml:"constraints"`
}

// Ready reports whether every table and constraint is present.
func (s *SchemaStatus) Ready() bool {
	for _, ok := range s.Tables {
		if !ok {
			return false
		}
	}
	for _, ok := range s.Constraints {
		if !ok {
			return false
		}
	}
	return true
}

// ApplySchema creates or updates the tables, keys and constraints declared by
// PersistentModels. It is additive and safe to run repeatedly.
func ApplySchema(ctx context.Context, db *gorm.DB) error {
	observability.Logger.InfoContext(ctx, "Applying schema", slog.Int("models", len(PersistentModels())))
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Schema applied")
	return nil
}

// GetSchemaStatus inspects the database for the postbook tables and constraints.
func GetSchemaStatus(ctx context.Context, db *gorm.DB) *SchemaStatus {
	m := db.WithContext(ctx).Migrator()
	status := &SchemaStatus{
		Tables: map[string]bool{
			models.User{}.TableName(): m.HasTable(&models.User{}),
			models.Post{}.TableName(): m.HasTable(&models.Post{}),
		},
		Constraints: map[string]bool{},
	}
	if status.Tables["posts"] {
		status.Constraints[ContentLengthCheck] = m.HasConstraint(&models.Post{}, ContentLengthCheck)
	}
	if status.Tables["users"] && status.Tables["posts"] {
		status.Constraints[PostsUserFK] = m.HasConstraint(&models.User{}, "Posts")
	}
	return status
}

// ClearAll deletes every post and user. Posts go first so no foreign key is left dangling.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error; err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		return nil
	})
}
