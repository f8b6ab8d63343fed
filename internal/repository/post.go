package repository

import (
	"context"
	"fmt"

	"postbook/internal/database"
	"postbook/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
	table
}

var postConstraintMessages = map[database.ConstraintKind]string{
	database.ConstraintCheck:      fmt.Sprintf("Post content exceeds %d characters", models.MaxContentLength),
	database.ConstraintForeignKey: "Post author does not exist",
	database.ConstraintNotNull:    "Post content is required",
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, table: newTable(models.Post{}.TableName())}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("insert")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error; err != nil {
		return r.writeError(ctx, err, "create", postConstraintMessages)
	}
	r.logger.LogCreate(ctx, map[string]interface{}{"id": post.ID, "user_id": post.UserID})
	return nil
}

// GetByID loads the post with its author.
func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer r.metrics.TrackQuery("select")()

	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, r.readError(ctx, err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	defer r.metrics.TrackQuery("select")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(clampLimit(limit)).
		Offset(clampOffset(offset)).
		Find(&posts).Error
	if err != nil {
		return nil, r.readError(ctx, err, "Post", nil)
	}
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	defer r.metrics.TrackQuery("select")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("id DESC").
		Limit(clampLimit(limit)).
		Offset(clampOffset(offset)).
		Find(&posts).Error
	if err != nil {
		return nil, r.readError(ctx, err, "Post", nil)
	}
	return posts, nil
}

// Update saves content and author. The loaded User is not written.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	defer r.metrics.TrackQuery("update")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return r.writeError(ctx, err, "update", postConstraintMessages)
	}
	r.logger.LogUpdate(ctx, map[string]interface{}{"id": post.ID})
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer r.metrics.TrackQuery("delete")()

	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return r.writeError(ctx, result.Error, "delete", postConstraintMessages)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	r.logger.LogDelete(ctx, map[string]interface{}{"id": id})
	return nil
}
