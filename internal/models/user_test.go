package models

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm/schema"
)

func TestUser_SetPasswordThenAuthenticate(t *testing.T) {
	t.Parallel()
	passwords := []string{
		"a",
		"password123",
		"correct horse battery staple",
		"ÅngstromPass12!",
		"🔑🔑🔑",
		strings.Repeat("x", 72),
		gofakeit.Password(true, true, true, true, true, 24),
	}

	for _, pw := range passwords {
		t.Run(pw, func(t *testing.T) {
			u := &User{Username: "alice"}
			require.NoError(t, u.SetPassword(pw))
			assert.True(t, u.Authenticate(pw))
			assert.True(t, u.HasPassword())
		})
	}
}

func TestUser_AuthenticateRejectsOtherPasswords(t *testing.T) {
	t.Parallel()
	u := &User{Username: "alice"}
	require.NoError(t, u.SetPassword("first-secret"))

	for _, candidate := range []string{"", "first-secre", "first-secret ", "FIRST-SECRET", "second-secret"} {
		assert.False(t, u.Authenticate(candidate), "candidate %q should not authenticate", candidate)
	}
}

func TestUser_AuthenticateWithoutPassword(t *testing.T) {
	t.Parallel()

	t.Run("never set", func(t *testing.T) {
		u := &User{Username: "bob"}
		assert.False(t, u.HasPassword())
		assert.False(t, u.Authenticate(""))
		assert.False(t, u.Authenticate("anything"))
	})

	t.Run("garbage stored value", func(t *testing.T) {
		u := &User{Username: "bob"}
		u.Password = PasswordHash{digest: "not-a-bcrypt-hash"}
		assert.NotPanics(t, func() {
			assert.False(t, u.Authenticate("not-a-bcrypt-hash"))
		})
	})
}

func TestUser_SetPasswordIsSalted(t *testing.T) {
	t.Parallel()
	u := &User{Username: "carol"}

	require.NoError(t, u.SetPassword("same-password"))
	first := u.Password.digest
	assert.True(t, u.Authenticate("same-password"))

	require.NoError(t, u.SetPassword("same-password"))
	second := u.Password.digest
	assert.True(t, u.Authenticate("same-password"))

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "same-password")
}

func TestUser_SetPasswordOverwritesPrevious(t *testing.T) {
	t.Parallel()
	u := &User{Username: "dave"}
	require.NoError(t, u.SetPassword("old"))
	require.NoError(t, u.SetPassword("new"))

	assert.False(t, u.Authenticate("old"))
	assert.True(t, u.Authenticate("new"))
}

func TestUser_SetPasswordTooLong(t *testing.T) {
	t.Parallel()
	u := &User{Username: "erin"}
	err := u.SetPassword(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
	assert.False(t, u.HasPassword())
}

func TestPasswordHash_CannotBeRead(t *testing.T) {
	t.Parallel()

	unset := &User{Username: "frank"}
	set := &User{Username: "grace"}
	require.NoError(t, set.SetPassword("hunter2"))

	for _, u := range []*User{unset, set} {
		_, err := json.Marshal(u.Password)
		assert.ErrorIs(t, err, ErrPasswordHashHidden)

		_, err = yaml.Marshal(u.Password)
		assert.Error(t, err)

		assert.Equal(t, "[redacted]", fmt.Sprint(u.Password))
		assert.Equal(t, "models.PasswordHash{[redacted]}", fmt.Sprintf("%#v", u.Password))
	}
}

func TestUser_JSONOmitsHash(t *testing.T) {
	t.Parallel()
	u := &User{ID: 7, Username: "heidi"}
	require.NoError(t, u.SetPassword("hunter2"))

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), u.Password.digest)
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"username":"heidi"`)
}

func TestUser_String(t *testing.T) {
	t.Parallel()
	u := &User{Username: "ivan"}
	require.NoError(t, u.SetPassword("hunter2"))

	assert.Equal(t, "<User ivan>", u.String())
	assert.NotContains(t, u.String(), u.Password.digest)
}

func TestPasswordHash_NoDriverAccess(t *testing.T) {
	t.Parallel()

	var h PasswordHash
	_, isValuer := interface{}(h).(driver.Valuer)
	_, isScanner := interface{}(&h).(sql.Scanner)
	assert.False(t, isValuer, "a Valuer would hand the digest to any caller")
	assert.False(t, isScanner, "a Scanner would let callers install arbitrary digests")
}

func TestPasswordHashSerializer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	s, err := schema.Parse(&User{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	field := s.LookUpField("_password_hash")
	require.NotNil(t, field)
	require.NotNil(t, field.Serializer)

	ser := passwordHashSerializer{}

	t.Run("unset hash is stored as NULL", func(t *testing.T) {
		v, err := ser.Value(ctx, field, reflect.Value{}, PasswordHash{})
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("stored digest is the bcrypt output", func(t *testing.T) {
		u := &User{Username: "judy"}
		require.NoError(t, u.SetPassword("hunter2"))
		v, err := ser.Value(ctx, field, reflect.Value{}, u.Password)
		require.NoError(t, err)
		assert.Equal(t, u.Password.digest, v)
		assert.True(t, strings.HasPrefix(v.(string), "$2"))
	})

	t.Run("scan loads digest into the user", func(t *testing.T) {
		source := &User{Username: "judy"}
		require.NoError(t, source.SetPassword("hunter2"))

		var loaded User
		dst := reflect.ValueOf(&loaded).Elem()
		require.NoError(t, ser.Scan(ctx, field, dst, []byte(source.Password.digest)))
		assert.True(t, loaded.Authenticate("hunter2"))

		require.NoError(t, ser.Scan(ctx, field, dst, nil))
		assert.False(t, loaded.HasPassword())

		assert.Error(t, ser.Scan(ctx, field, dst, 42))
	})

	t.Run("rejects foreign values", func(t *testing.T) {
		_, err := ser.Value(ctx, field, reflect.Value{}, "plaintext")
		assert.Error(t, err)
	})
}

func TestSetBcryptCost(t *testing.T) {
	assert.Error(t, SetBcryptCost(bcrypt.MinCost-1))
	assert.Error(t, SetBcryptCost(bcrypt.MaxCost+1))
	assert.NoError(t, SetBcryptCost(bcrypt.MinCost))
}
