package models

import "fmt"

// MaxContentLength is the largest post body, in characters, the posts table accepts.
const MaxContentLength = 400

// Post is a content item optionally owned by a user.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null;check:chk_posts_content_length,length(content) <= 400" json:"content"`
	UserID  *uint  `gorm:"index" json:"-" yaml:"-"`
	User    *User  `gorm:"foreignKey:UserID" json:"-" yaml:"-"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string {
	return "posts"
}

// OwnedBy reports whether the post is attached to the given user.
func (p *Post) OwnedBy(userID uint) bool {
	return p.UserID != nil && *p.UserID == userID
}

func (p *Post) String() string {
	return fmt.Sprintf("<Post %d: %s>", p.ID, p.Content)
}
