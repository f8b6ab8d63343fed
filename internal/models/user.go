// Package models contains data structures for the application's domain models.
package models

import "fmt"

// User is an account: an identity plus the credential used to authenticate it.
// The password hash lives in the users._password_hash column and has no getter.
// Output shapes live in internal/views; the record itself only exposes id and username.
type User struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Username string       `gorm:"unique;not null" json:"username"`
	Password PasswordHash `gorm:"column:_password_hash;serializer:passwordhash" json:"-" yaml:"-"`
	Posts    []Post       `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-" yaml:"-"`
}

// TableName returns the database table name for User.
func (User) TableName() string {
	return "users"
}

// SetPassword hashes plaintext with a fresh salt and replaces any stored hash.
func (u *User) SetPassword(plaintext string) error {
	if err := u.Password.set(plaintext); err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return nil
}

// Authenticate reports whether candidate matches the stored hash. It returns
// false when no password has been set.
func (u *User) Authenticate(candidate string) bool {
	return u.Password.matches(candidate)
}

// HasPassword reports whether a password has ever been set on the user.
func (u *User) HasPassword() bool {
	return u.Password.IsSet()
}

func (u *User) String() string {
	return fmt.Sprintf("<User %s>", u.Username)
}
