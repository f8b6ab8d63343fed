package seed

import (
	"context"
	"fmt"
	"log/slog"

	"postbook/internal/database"
	"postbook/internal/observability"

	"gorm.io/gorm"
)

// Summary reports what a seeding run created.
type Summary struct {
	Users int
	Posts int
}

// Seeder populates the database with generated users and posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, opts)}
}

// Run creates numUsers users, each with postsPerUser posts.
func (s *Seeder) Run(ctx context.Context, numUsers, postsPerUser int) (Summary, error) {
	var summary Summary
	if numUsers < 0 || postsPerUser < 0 {
		return summary, fmt.Errorf("counts must be non-negative (users=%d, posts=%d)", numUsers, postsPerUser)
	}

	observability.Logger.InfoContext(ctx, "Starting database seeding",
		slog.Int("users", numUsers),
		slog.Int("posts_per_user", postsPerUser),
	)

	for i := 0; i < numUsers; i++ {
		user, err := s.factory.CreateUser(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to create user %d: %w", i+1, err)
		}
		summary.Users++

		for j := 0; j < postsPerUser; j++ {
			if _, err := s.factory.CreatePost(ctx, user); err != nil {
				return summary, fmt.Errorf("failed to create post for %s: %w", user, err)
			}
			summary.Posts++
		}
	}

	observability.Logger.InfoContext(ctx, "Database seeding completed",
		slog.Int("users", summary.Users),
		slog.Int("posts", summary.Posts),
	)
	return summary, nil
}

// ClearAll deletes every post and user.
func (s *Seeder) ClearAll(ctx context.Context) error {
	observability.Logger.InfoContext(ctx, "Clearing existing data")
	return database.ClearAll(ctx, s.db)
}

// Factory exposes the seeder's factory for callers that need individual records.
func (s *Seeder) Factory() *Factory {
	return s.factory
}
