package gorm

import (
	"testing"

	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/optional"
	"github.com/traPtitech/oidp/utils/random"
)

func TestRepositoryImpl_CreateApplication(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common2)

	t.Run("missing client id", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		err := repo.CreateApplication(&model.Application{ClientType: model.ClientTypePublic})
		assert.True(repository.IsArgError(err))
	})

	t.Run("confidential without secret", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		err := repo.CreateApplication(&model.Application{
			ClientID:   random.AlphaNumeric(20),
			ClientType: model.ClientTypeConfidential,
		})
		assert.True(repository.IsArgError(err))
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		clientID := random.AlphaNumeric(20)
		app := &model.Application{
			ClientID:     clientID,
			ClientType:   model.ClientTypePublic,
			DisplayName:  "Test App",
			Permissions:  model.Permissions{"gt:authorization_code", "scp:openid"},
			RedirectURIs: model.URIs{"http://localhost/cb"},
		}
		require.NoError(repo.CreateApplication(app))
		assert.NotEmpty(app.ID)
		assert.NotEmpty(app.ConcurrencyStamp)

		got, err := repo.GetApplicationByClientID(clientID)
		if assert.NoError(err) {
			assert.Equal(app.ID, got.ID)
			assert.Equal([]string{"authorization_code"}, got.GrantTypes())
			assert.Equal(model.AccessScopes{"openid"}, got.AllowedScopes())
		}
	})

	t.Run("duplicate client id", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		app := mustMakeApplication(t, repo, rand)
		err := repo.CreateApplication(&model.Application{
			ClientID:   app.ClientID,
			ClientType: model.ClientTypePublic,
		})
		assert.EqualError(err, repository.ErrAlreadyExists.Error())
	})
}

func TestRepositoryImpl_SaveApplication(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common2)

	assert, require := assertAndRequire(t)

	clientID := random.AlphaNumeric(20)
	require.NoError(repo.SaveApplication(&model.Application{
		ClientID:   clientID,
		ClientType: model.ClientTypePublic,
		Properties: model.Payload{"client_id": clientID},
	}))

	first, err := repo.GetApplicationByClientID(clientID)
	require.NoError(err)

	require.NoError(repo.SaveApplication(&model.Application{
		ClientID:     clientID,
		ClientSecret: null.StringFrom("s3cret"),
		ClientType:   model.ClientTypeConfidential,
		DisplayName:  "Renamed",
		Properties:   model.Payload{"client_id": clientID, "client_secret": "s3cret"},
	}))

	got, err := repo.GetApplicationByClientID(clientID)
	if assert.NoError(err) {
		assert.Equal(first.ID, got.ID)
		assert.True(got.Confidential())
		assert.Equal("Renamed", got.DisplayName)
		assert.NotEqual(first.ConcurrencyStamp, got.ConcurrencyStamp)
	}
}

func TestRepositoryImpl_UpdateApplication(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common2)

	app := mustMakeApplication(t, repo, rand)

	t.Run("nil id", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.EqualError(repo.UpdateApplication("", repository.UpdateApplicationArgs{}), repository.ErrNilID.Error())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.EqualError(repo.UpdateApplication(random.AlphaNumeric(20), repository.UpdateApplicationArgs{}), repository.ErrNotFound.Error())
	})

	t.Run("no change", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.NoError(repo.UpdateApplication(app.ClientID, repository.UpdateApplicationArgs{}))
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		target := mustMakeApplication(t, repo, rand)
		newName := random.AlphaNumeric(20)
		require.NoError(repo.UpdateApplication(target.ClientID, repository.UpdateApplicationArgs{
			DisplayName:  optional.From(newName),
			RedirectURIs: model.URIs{"http://localhost/other"},
		}))

		got, err := repo.GetApplicationByClientID(target.ClientID)
		if assert.NoError(err) {
			assert.Equal(newName, got.DisplayName)
			assert.Equal(model.URIs{"http://localhost/other"}, got.RedirectURIs)
			assert.NotEqual(target.ConcurrencyStamp, got.ConcurrencyStamp)
		}
	})
}

func TestRepositoryImpl_DeleteApplication(t *testing.T) {
	t.Parallel()
	repo, _, _ := setup(t, common2)

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		assert := assert.New(t)

		assert.EqualError(repo.DeleteApplication(random.AlphaNumeric(20)), repository.ErrNotFound.Error())
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		assert, require := assertAndRequire(t)

		app := mustMakeApplication(t, repo, rand)
		require.NoError(repo.DeleteApplication(app.ClientID))

		_, err := repo.GetApplicationByClientID(app.ClientID)
		assert.EqualError(err, repository.ErrNotFound.Error())
	})
}
