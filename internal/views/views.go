// Package views holds the allow-listed output shapes for users and posts.
//
// Each record has two shapes: a full view that embeds its related records and
// a truncated view used when the record appears nested inside the other one.
// The truncated shapes have no field for the back edge, so serializing a user
// never re-enters that user through its posts and vice versa.
package views

import (
	"postbook/internal/models"
)

// UserView is the public shape of a user with its posts.
type UserView struct {
	ID       uint              `json:"id" yaml:"id"`
	Username string            `json:"username" yaml:"username"`
	Posts    []PostViewForUser `json:"posts" yaml:"posts"`
}

// PostView is the public shape of a post with its author.
type PostView struct {
	ID      uint             `json:"id" yaml:"id"`
	Content string           `json:"content" yaml:"content"`
	User    *UserViewForPost `json:"user" yaml:"user"`
}

// UserViewForPost is a user nested under a post; it has no posts field.
type UserViewForPost struct {
	ID       uint   `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
}

// PostViewForUser is a post nested under a user; it has no user field.
type PostViewForUser struct {
	ID      uint   `json:"id" yaml:"id"`
	Content string `json:"content" yaml:"content"`
}

// NewUserView projects u and its loaded posts. Posts must be preloaded by the
// caller; an unloaded association renders as an empty list.
func NewUserView(u *models.User) *UserView {
	if u == nil {
		return nil
	}
	v := &UserView{
		ID:       u.ID,
		Username: u.Username,
		Posts:    make([]PostViewForUser, 0, len(u.Posts)),
	}
	for i := range u.Posts {
		v.Posts = append(v.Posts, PostViewForUser{
			ID:      u.Posts[i].ID,
			Content: u.Posts[i].Content,
		})
	}
	return v
}

// NewPostView projects p and its loaded author. An unattached post, or one
// whose author was not preloaded, renders with a null user.
func NewPostView(p *models.Post) *PostView {
	if p == nil {
		return nil
	}
	v := &PostView{
		ID:      p.ID,
		Content: p.Content,
	}
	if p.User != nil {
		v.User = &UserViewForPost{
			ID:       p.User.ID,
			Username: p.User.Username,
		}
	}
	return v
}

func NewUserViews(users []models.User) []*UserView {
	out := make([]*UserView, 0, len(users))
	for i := range users {
		out = append(out, NewUserView(&users[i]))
	}
	return out
}

func NewPostViews(posts []models.Post) []*PostView {
	out := make([]*PostView, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostView(&posts[i]))
	}
	return out
}
