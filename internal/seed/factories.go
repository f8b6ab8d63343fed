// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"postbook/internal/models"
	"postbook/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user is created with.
const DefaultPassword = "password123"

// Options controls generated data.
type Options struct {
	// Seed makes generated data reproducible. Zero seeds from the clock.
	Seed int64
	// Password overrides DefaultPassword.
	Password string
}

// Factory builds users and posts and persists them through the repositories.
type Factory struct {
	faker    *gofakeit.Faker
	password string
	users    repository.UserRepository
	posts    repository.PostRepository
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	password := opts.Password
	if password == "" {
		password = DefaultPassword
	}
	return &Factory{
		faker:    gofakeit.New(seed),
		password: password,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
	}
}

// BuildUser returns an unsaved user with a generated username and the factory password.
func (f *Factory) BuildUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{Username: f.username()}
	if err := user.SetPassword(f.password); err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(user)
	}
	return user, nil
}

// CreateUser constructs and persists a sample user.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	user, err := f.BuildUser(overrides...)
	if err != nil {
		return nil, err
	}
	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost returns an unsaved post attached to user, or unattached when user is nil.
func (f *Factory) BuildPost(user *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{Content: f.content()}
	if user != nil {
		id := user.ID
		post.UserID = &id
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost constructs and persists a sample post.
func (f *Factory) CreatePost(ctx context.Context, user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(user, overrides...)
	if err := f.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// username yields a name that passes username validation: letters from the
// faker plus a numeric suffix.
func (f *Factory) username() string {
	base := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, f.faker.Username())
	if len(base) < 3 {
		base = "user"
	}
	if len(base) > 20 {
		base = base[:20]
	}
	return fmt.Sprintf("%s%d", base, f.faker.Number(100000, 999999))
}

func (f *Factory) content() string {
	text := f.faker.Sentence(f.faker.Number(4, 30))
	if utf8.RuneCountInString(text) <= models.MaxContentLength {
		return text
	}
	return string([]rune(text)[:models.MaxContentLength])
}
