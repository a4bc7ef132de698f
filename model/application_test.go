package model

import (
	"testing"

	"github.com/guregu/null"
	"github.com/stretchr/testify/assert"
)

func TestApplication_Permissions(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	app := &Application{
		ClientID:   "web",
		ClientType: ClientTypePublic,
		Permissions: Permissions{
			PermissionGrantTypePrefix + "authorization_code",
			PermissionGrantTypePrefix + "refresh_token",
			PermissionScopePrefix + "openid",
			PermissionScopePrefix + "email",
		},
	}

	assert.Equal([]string{"authorization_code", "refresh_token"}, app.GrantTypes())
	assert.Equal(AccessScopes{"openid", "email"}, app.AllowedScopes())
	assert.False(app.Confidential())
}

func TestApplication_Validate(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.NoError((&Application{
		ClientID:   "web",
		ClientType: ClientTypePublic,
	}).Validate())

	assert.Error((&Application{
		ClientID:   "web",
		ClientType: ClientTypeConfidential,
	}).Validate())

	assert.NoError((&Application{
		ClientID:     "web",
		ClientType:   ClientTypeConfidential,
		ClientSecret: null.StringFrom("secret"),
	}).Validate())

	assert.Error((&Application{
		ClientType: ClientTypePublic,
	}).Validate())
}

func TestPermissions_ScanValue(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := Permissions{}
	assert.NoError(p.Scan(`["gt:authorization_code","scp:openid"]`))
	assert.Equal(Permissions{"gt:authorization_code", "scp:openid"}, p)

	v, err := p.Value()
	assert.NoError(err)
	assert.JSONEq(`["gt:authorization_code","scp:openid"]`, v.(string))
}
