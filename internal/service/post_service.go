package service

import (
	"context"

	"postbook/internal/models"
	"postbook/internal/observability"
	"postbook/internal/repository"
	"postbook/internal/validation"
	"postbook/internal/views"

	"go.opentelemetry.io/otel/attribute"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput is the payload for a new post. A nil UserID creates an
// unattached post.
type CreatePostInput struct {
	UserID  *uint
	Content string
}

// UpdatePostInput replaces a post's content. When ActorID is set, only the
// post's author may edit it.
type UpdatePostInput struct {
	ActorID *uint
	PostID  uint
	Content string
}

type DeletePostInput struct {
	ActorID *uint
	PostID  uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (view *views.PostView, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Create")
	defer func() { span.Finish(err) }()

	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.UserID != nil {
		span.AddAttributes(attribute.Int64("user.id", int64(*in.UserID)))
		ctx = observability.WithActorID(ctx, *in.UserID)
	}

	post := &models.Post{Content: in.Content, UserID: in.UserID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	return views.NewPostView(created), nil
}

func (s *PostService) Get(ctx context.Context, postID uint) (view *views.PostView, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Get", attribute.Int64("post.id", int64(postID)))
	defer func() { span.Finish(err) }()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return views.NewPostView(post), nil
}

func (s *PostService) UpdateContent(ctx context.Context, in UpdatePostInput) (view *views.PostView, err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.UpdateContent", attribute.Int64("post.id", int64(in.PostID)))
	defer func() { span.Finish(err) }()

	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.authorize(ctx, in.PostID, in.ActorID)
	if err != nil {
		return nil, err
	}

	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return views.NewPostView(post), nil
}

func (s *PostService) Delete(ctx context.Context, in DeletePostInput) (err error) {
	span, ctx := observability.NewSpan(ctx, "PostService.Delete", attribute.Int64("post.id", int64(in.PostID)))
	defer func() { span.Finish(err) }()

	if _, err := s.authorize(ctx, in.PostID, in.ActorID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// ListByUser returns the user's posts, newest first.
func (s *PostService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*views.PostView, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return views.NewPostViews(posts), nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context, limit, offset int) ([]*views.PostView, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return views.NewPostViews(posts), nil
}

// authorize loads the post and, when actorID is set, checks that the actor wrote it.
func (s *PostService) authorize(ctx context.Context, postID uint, actorID *uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if actorID != nil && !post.OwnedBy(*actorID) {
		observability.Logger.WarnContext(observability.WithActorID(ctx, *actorID),
			"post modification denied", "post_id", postID)
		return nil, models.NewForbiddenError("Not authorized to modify this post")
	}
	return post, nil
}
