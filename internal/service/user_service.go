// Package service holds the application operations on users and posts.
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

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a user with a hashed password. A taken username surfaces
// as the repository's CONFLICT error.
func (s *UserService) Register(ctx context.Context, username, password string) (user *models.User, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Register", attribute.String("user.username", username))
	defer func() { span.Finish(err) }()

	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user = &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	span.AddAttributes(attribute.Int64("user.id", int64(user.ID)))
	observability.Logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user whose stored hash matches password. Unknown
// usernames and wrong passwords produce the same UNAUTHORIZED error.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (user *models.User, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Authenticate", attribute.String("user.username", username))
	defer func() { span.Finish(err) }()

	user, err = s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			observability.AuthAttempts.WithLabelValues(observability.AuthUnknownUser).Inc()
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, err
	}

	if !user.Authenticate(password) {
		observability.AuthAttempts.WithLabelValues(observability.AuthBadPassword).Inc()
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	observability.AuthAttempts.WithLabelValues(observability.AuthSucceeded).Inc()
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, current, next string) (err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.ChangePassword", attribute.Int64("user.id", int64(userID)))
	defer func() { span.Finish(err) }()
	ctx = observability.WithActorID(ctx, userID)

	if err := validation.ValidatePassword(next); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Authenticate(current) {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if err := user.SetPassword(next); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	observability.PasswordChanges.Inc()
	observability.Logger.InfoContext(ctx, "password changed")
	return nil
}

// GetProfile returns the user with all of their posts.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (view *views.UserView, err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.GetProfile", attribute.Int64("user.id", int64(userID)))
	defer func() { span.Finish(err) }()

	user, err := s.userRepo.GetByIDWithPosts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return views.NewUserView(user), nil
}

// Delete removes the user. Their posts remain, detached.
func (s *UserService) Delete(ctx context.Context, userID uint) (err error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Delete", attribute.Int64("user.id", int64(userID)))
	defer func() { span.Finish(err) }()

	return s.userRepo.Delete(ctx, userID)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
