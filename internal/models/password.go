package models

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/schema"
)

// ErrPasswordHashHidden is returned whenever something tries to read a stored password hash.
var ErrPasswordHashHidden = errors.New("password hashes may not be viewed")

var bcryptCost = bcrypt.DefaultCost

// SetBcryptCost changes the work factor used by SetPassword for subsequent hashes.
func SetBcryptCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d outside [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	bcryptCost = cost
	return nil
}

// PasswordHash holds a salted bcrypt digest. It is write-only: the digest can be
// replaced and checked against a candidate, never read back.
type PasswordHash struct {
	digest string
}

func (h *PasswordHash) set(plaintext string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return err
	}
	h.digest = string(hashed)
	return nil
}

func (h PasswordHash) matches(candidate string) bool {
	if h.digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h.digest), []byte(candidate)) == nil
}

// IsSet reports whether a digest has been stored.
func (h PasswordHash) IsSet() bool {
	return h.digest != ""
}

// GormDataType stores the digest as a plain string column.
func (PasswordHash) GormDataType() string {
	return "string"
}

const passwordHashSerializerName = "passwordhash"

func init() {
	schema.RegisterSerializer(passwordHashSerializerName, passwordHashSerializer{})
}

// passwordHashSerializer moves digests between PasswordHash fields and the
// _password_hash column. It is the only path in or out of storage.
type passwordHashSerializer struct{}

func (passwordHashSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var h PasswordHash
	switch v := dbValue.(type) {
	case nil:
	case string:
		h.digest = v
	case []byte:
		h.digest = string(v)
	default:
		return fmt.Errorf("cannot scan %T into %s", dbValue, field.Name)
	}
	field.ReflectValueOf(ctx, dst).Set(reflect.ValueOf(h))
	return nil
}

func (passwordHashSerializer) Value(_ context.Context, field *schema.Field, _ reflect.Value, fieldValue interface{}) (interface{}, error) {
	var h PasswordHash
	switch v := fieldValue.(type) {
	case PasswordHash:
		h = v
	case *PasswordHash:
		if v != nil {
			h = *v
		}
	default:
		return nil, fmt.Errorf("cannot store %T in %s", fieldValue, field.Name)
	}
	if h.digest == "" {
		return nil, nil
	}
	return h.digest, nil
}

func (PasswordHash) MarshalJSON() ([]byte, error) {
	return nil, ErrPasswordHashHidden
}

func (PasswordHash) MarshalYAML() (interface{}, error) {
	return nil, ErrPasswordHashHidden
}

func (PasswordHash) String() string {
	return "[redacted]"
}

func (PasswordHash) GoString() string {
	return "models.PasswordHash{[redacted]}"
}
