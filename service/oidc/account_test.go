package oidc

import (
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"

	"github.com/traPtitech/oidp/model"
)

func makeAccount() *Account {
	return &Account{user: &model.User{
		ID:            uuid.Must(uuid.NewV7()),
		Name:          "demo",
		DisplayName:   "Demo User",
		Email:         "demo@example.com",
		EmailVerified: true,
		FamilyName:    null.StringFrom("Demo"),
		GivenName:     null.StringFrom("Taro"),
		Picture:       null.StringFrom("https://example.com/demo.png"),
		Active:        true,
		UpdatedAt:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}}
}

func TestAccount_Claims(t *testing.T) {
	t.Parallel()

	t.Run("openid only", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		account := makeAccount()
		claims := account.Claims(model.AccessScopes{"openid"})

		assert.Equal(account.Sub(), claims["sub"])
		assert.NotContains(claims, "email")
		assert.NotContains(claims, "name")
	})

	t.Run("profile", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		account := makeAccount()
		claims := account.Claims(model.AccessScopes{"openid", "profile"})

		assert.Equal("Demo User", claims["name"])
		assert.Equal("demo", claims["preferred_username"])
		assert.Equal("Demo", claims["family_name"])
		assert.Equal("Taro", claims["given_name"])
		assert.Equal("https://example.com/demo.png", claims["picture"])
		assert.EqualValues(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix(), claims["updated_at"])
		assert.NotContains(claims, "email")
	})

	t.Run("email", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		claims := makeAccount().Claims(model.AccessScopes{"openid", "email"})

		assert.Equal("demo@example.com", claims["email"])
		assert.Equal(true, claims["email_verified"])
		assert.NotContains(claims, "name")
	})

	t.Run("optional profile fields omitted", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		account := &Account{user: &model.User{
			ID:    uuid.Must(uuid.NewV7()),
			Name:  "minimal",
			Email: "minimal@example.com",
		}}
		claims := account.Claims(model.AccessScopes{"profile"})

		assert.Equal("minimal", claims["name"])
		assert.NotContains(claims, "family_name")
		assert.NotContains(claims, "given_name")
		assert.NotContains(claims, "picture")
		assert.NotContains(claims, "nickname")
	})
}
