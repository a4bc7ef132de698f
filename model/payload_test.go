package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPayload_Accessors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := Payload{
		"uid":       "session-uid",
		"userCode":  "ABCD-EFGH",
		"grantId":   "g1",
		"clientId":  "web",
		"accountId": "u1",
		"exp":       float64(1700000000),
	}

	assert.Equal("session-uid", p.UID())
	assert.Equal("ABCD-EFGH", p.UserCode())
	assert.Equal("g1", p.GrantID())
	assert.Equal("web", p.ClientID())
	assert.Equal("u1", p.AccountID())
	assert.EqualValues(1700000000, p.Exp())
	assert.Zero(p.Consumed())
}

func TestPayload_AccountIDFallsBackToSub(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal("u2", Payload{"sub": "u2"}.AccountID())
	assert.Equal("u1", Payload{"accountId": "u1", "sub": "u2"}.AccountID())
	assert.Empty(Payload{}.AccountID())
}

func TestPayload_SetConsumed(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := Payload{"jti": "x"}
	p.SetConsumed(1700000123)
	assert.EqualValues(1700000123, p.Consumed())

	// JSONラウンドトリップ後のfloat64でも読める
	p["consumed"] = float64(1700000123)
	assert.EqualValues(1700000123, p.Consumed())
}

func TestPayload_Scopes(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(AccessScopes{"openid", "email"}, Payload{"scopes": []any{"openid", "email"}}.Scopes())
	assert.Equal(AccessScopes{"openid", "email"}, Payload{"scopes": []string{"openid", "email", "openid"}}.Scopes())
	assert.Equal(AccessScopes{"openid", "profile"}, Payload{"scope": "openid profile"}.Scopes())
	assert.Empty(Payload{}.Scopes())
}

func TestPayload_Clone(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := Payload{"jti": "x"}
	c := p.Clone()
	c["jti"] = "y"
	assert.Equal("x", p.StringField("jti"))
}

func TestPayload_ScanValue(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	p := Payload{}
	assert.NoError(p.Scan([]byte(`{"jti":"abc","exp":1700000000}`)))
	assert.Equal("abc", p.StringField("jti"))
	assert.EqualValues(1700000000, p.Exp())

	v, err := Payload{"jti": "abc"}.Value()
	assert.NoError(err)
	assert.JSONEq(`{"jti":"abc"}`, v.(string))
}
