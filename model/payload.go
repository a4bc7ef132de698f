package model

import (
	"database/sql/driver"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// Payload エンジンが保存を依頼するアーティファクト本体の構造化データ
//
// 中身のスキーマはエンジン側が所有するため、ストレージ層からは不透明な
// マップとして扱い、検索・失効判定に必要なフィールドだけを取り出します。
type Payload map[string]any

// Value database/sql/driver.Valuer 実装
func (p Payload) Value() (driver.Value, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(p)
}

// Scan database/sql.Scanner 実装
func (p *Payload) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*p = Payload{}
		return nil
	case string:
		return jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(s, p)
	case []byte:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(s, p)
	default:
		return errors.New("failed to scan Payload")
	}
}

// Clone Payloadの浅いコピーを返します
func (p Payload) Clone() Payload {
	c := make(Payload, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// UID セッション相関キーuidを返します
func (p Payload) UID() string {
	return p.StringField("uid")
}

// UserCode デバイスフローのuserCodeを返します
func (p Payload) UserCode() string {
	return p.StringField("userCode")
}

// GrantID アーティファクトが参照する認可グラントのIDを返します
func (p Payload) GrantID() string {
	return p.StringField("grantId")
}

// ClientID アーティファクトを発行したクライアントのIDを返します
func (p Payload) ClientID() string {
	return p.StringField("clientId")
}

// AccountID アーティファクトの主体となるアカウントのIDを返します
//
// エンジンはアーティファクト種別によってaccountIdとsubを使い分けるため、
// accountIdを優先し、無ければsubを参照します。
func (p Payload) AccountID() string {
	if v := p.StringField("accountId"); len(v) > 0 {
		return v
	}
	return p.StringField("sub")
}

// Exp ペイロード自身が持つ有効期限(Unix秒)を返します 持たない場合は0
func (p Payload) Exp() int64 {
	return p.int64Field("exp")
}

// Consumed 消費済みマーカー(Unix秒)を返します 未消費の場合は0
func (p Payload) Consumed() int64 {
	return p.int64Field("consumed")
}

// SetConsumed 消費済みマーカー(Unix秒)をペイロード自身に書き込みます
func (p Payload) SetConsumed(unix int64) {
	p["consumed"] = unix
}

// Scopes ペイロードのscopesフィールドをAccessScopesとして返します
//
// エンジンは配列形式とスペース区切り文字列形式("scope")の両方を使うため、
// どちらの形式でも受け付けます。
func (p Payload) Scopes() AccessScopes {
	scopes := AccessScopes{}
	switch v := p["scopes"].(type) {
	case []any:
		for _, s := range v {
			if str, ok := s.(string); ok {
				scopes.Add(AccessScope(str))
			}
		}
		return scopes
	case []string:
		for _, s := range v {
			scopes.Add(AccessScope(s))
		}
		return scopes
	}
	if v, ok := p["scope"].(string); ok {
		scopes.FromString(v)
	}
	return scopes
}

// StringList 指定したフィールドを文字列の配列として返します
//
// JSONデコード後の[]anyと[]stringのどちらの形式でも受け付けます。
func (p Payload) StringList(key string) []string {
	switch v := p[key].(type) {
	case []any:
		r := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				r = append(r, str)
			}
		}
		return r
	case []string:
		return v
	}
	return nil
}

// StringField 指定したフィールドを文字列として返します 文字列でない場合は空文字列
func (p Payload) StringField(key string) string {
	v, _ := p[key].(string)
	return v
}

func (p Payload) int64Field(key string) int64 {
	switch v := p[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}
