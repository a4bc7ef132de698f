package gorm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/random"
)

func TestRepositoryImpl_SaveAuthorization(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common)

	app := mustMakeApplication(t, repo, rand)

	t.Run("nil id", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.EqualError(repo.SaveAuthorization(&model.Authorization{ApplicationID: app.ID}), repository.ErrNilID.Error())
	})

	t.Run("missing application id", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		err := repo.SaveAuthorization(&model.Authorization{ID: random.AlphaNumeric(26)})
		assert.True(repository.IsArgError(err))
	})

	t.Run("unknown application reference", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		err := repo.SaveAuthorization(&model.Authorization{
			ID:            random.AlphaNumeric(26),
			ApplicationID: "00000000-0000-0000-0000-000000000000",
		})
		assert.EqualError(err, repository.ErrReferenceNotFound.Error())
	})

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		auth := &model.Authorization{
			ID:            random.AlphaNumeric(26),
			ApplicationID: app.ID,
			Subject:       "u1",
			Scopes:        model.AccessScopes{"openid", "email"},
			Properties:    model.Payload{"accountId": "u1"},
		}
		require.NoError(repo.SaveAuthorization(auth))

		got, err := repo.GetAuthorization(auth.ID)
		if assert.NoError(err) {
			assert.Equal(model.AuthorizationStatusValid, got.Status)
			assert.Equal(model.AuthorizationTypePermanent, got.Type)
			assert.Equal(model.AccessScopes{"openid", "email"}, got.Scopes)
		}
	})

	t.Run("upsert updates in place", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		auth := mustMakeAuthorization(t, repo, app.ID, "u2")
		stamp := auth.ConcurrencyStamp

		require.NoError(repo.SaveAuthorization(&model.Authorization{
			ID:            auth.ID,
			ApplicationID: app.ID,
			Subject:       "u2",
			Scopes:        model.AccessScopes{"openid", "profile"},
			Properties:    model.Payload{"accountId": "u2"},
		}))

		got, err := repo.GetAuthorization(auth.ID)
		if assert.NoError(err) {
			assert.Equal(model.AccessScopes{"openid", "profile"}, got.Scopes)
			assert.NotEqual(stamp, got.ConcurrencyStamp)
		}

		auths, err := repo.GetAuthorizationsBySubject("u2")
		if assert.NoError(err) {
			assert.Len(auths, 1)
		}
	})
}

func TestRepositoryImpl_RevokeAuthorization(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common)

	app := mustMakeApplication(t, repo, rand)

	t.Run("missing is not an error", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.NoError(repo.RevokeAuthorization(random.AlphaNumeric(26)))
	})

	t.Run("success and idempotent", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		auth := mustMakeAuthorization(t, repo, app.ID, "u3")
		require.NoError(repo.RevokeAuthorization(auth.ID))

		_, err := repo.GetAuthorization(auth.ID)
		assert.EqualError(err, repository.ErrNotFound.Error())

		assert.NoError(repo.RevokeAuthorization(auth.ID))
	})

	t.Run("save resurrects a revoked grant", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		auth := mustMakeAuthorization(t, repo, app.ID, "u4")
		require.NoError(repo.RevokeAuthorization(auth.ID))

		require.NoError(repo.SaveAuthorization(&model.Authorization{
			ID:            auth.ID,
			ApplicationID: app.ID,
			Subject:       "u4",
			Scopes:        model.AccessScopes{"openid"},
			Properties:    model.Payload{"accountId": "u4"},
		}))

		got, err := repo.GetAuthorization(auth.ID)
		if assert.NoError(err) {
			assert.Equal(model.AuthorizationStatusValid, got.Status)
		}
	})
}
