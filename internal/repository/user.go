package repository

import (
	"context"

	"postbook/internal/database"
	"postbook/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
	table
}

var userConstraintMessages = map[database.ConstraintKind]string{
	database.ConstraintUnique:  "Username already taken",
	database.ConstraintNotNull: "Username is required",
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db, table: newTable(models.User{}.TableName())}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	defer r.metrics.TrackQuery("select")()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, r.readError(ctx, err, "User", id)
	}
	return &user, nil
}

// GetByIDWithPosts loads the user and all of its posts, oldest first.
func (r *userRepository) GetByIDWithPosts(ctx context.Context, id uint) (*models.User, error) {
	defer r.metrics.TrackQuery("select")()

	var user models.User
	if err := r.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&user, id).Error; err != nil {
		return nil, r.readError(ctx, err, "User", id)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer r.metrics.TrackQuery("select")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, models.NewNotFoundByError("User", "username", username)
		}
		return nil, r.readError(ctx, err, "User", username)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	defer r.metrics.TrackQuery("insert")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error; err != nil {
		return r.writeError(ctx, err, "create", userConstraintMessages)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"id": user.ID, "username": user.Username})
	return nil
}

// Update saves the user's own columns. Loaded posts are not written.
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	defer r.metrics.TrackQuery("update")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error; err != nil {
		return r.writeError(ctx, err, "update", userConstraintMessages)
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"id": user.ID})
	return nil
}

// Delete removes the user. The database detaches the user's posts.
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete")()

	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return r.writeError(ctx, result.Error, "delete", userConstraintMessages)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	defer r.metrics.TrackQuery("select")()

	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Limit(clampLimit(limit)).
		Offset(clampOffset(offset)).
		Find(&users).Error; err != nil {
		return nil, r.readError(ctx, err, "User", nil)
	}
	return users, nil
}
