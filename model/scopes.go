package model

import (
	"database/sql/driver"
	"errors"
	"strings"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// AccessScope 認可グラントのスコープ
type AccessScope string

// AccessScopes AccessScopeの順序付きセット
//
// 追加順を保持し、同じスコープは一度しか現れません。
type AccessScopes []AccessScope

// SupportedAccessScopes 対応するスコープ一覧を返します
func SupportedAccessScopes() []string {
	return []string{"openid", "profile", "email", "offline_access"}
}

// Value database/sql/driver.Valuer 実装
func (arr AccessScopes) Value() (driver.Value, error) {
	return arr.String(), nil
}

// Scan database/sql.Scanner 実装
func (arr *AccessScopes) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		*arr = AccessScopes{}
	case string:
		arr.FromString(s)
	case []byte:
		arr.FromString(string(s))
	default:
		return errors.New("failed to scan AccessScopes")
	}
	return nil
}

// MarshalJSON encoding/json.Marshaler 実装
func (arr AccessScopes) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(arr.StringArray())
}

// UnmarshalJSON encoding/json.Unmarshaler 実装
func (arr *AccessScopes) UnmarshalJSON(data []byte) error {
	var str []string
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &str); err != nil {
		return err
	}

	s := AccessScopes{}
	for _, v := range str {
		s.Add(AccessScope(v))
	}
	*arr = s
	return nil
}

// FromString スペース区切り文字列からAccessScopeを抽出して設定します
func (arr *AccessScopes) FromString(s string) {
	r := AccessScopes{}
	for _, v := range strings.Fields(s) {
		r.Add(AccessScope(v))
	}
	*arr = r
}

// Add AccessScopesにスコープを加えます 既に含まれる場合は何もしません
func (arr *AccessScopes) Add(scopes ...AccessScope) {
	for _, s := range scopes {
		if !arr.Contains(s) {
			*arr = append(*arr, s)
		}
	}
}

// Contains AccessScopesに指定したスコープが含まれるかどうかを返します
func (arr AccessScopes) Contains(s AccessScope) bool {
	for _, v := range arr {
		if v == s {
			return true
		}
	}
	return false
}

// String AccessScopesをスペース区切りで文字列に出力します
func (arr AccessScopes) String() string {
	return strings.Join(arr.StringArray(), " ")
}

// StringArray AccessScopesをstringの配列に変換します
func (arr AccessScopes) StringArray() []string {
	return lo.Map(arr, func(s AccessScope, _ int) string { return string(s) })
}

// Validate github.com/go-ozzo/ozzo-validation.Validatable 実装
func (arr AccessScopes) Validate() error {
	scopes := lo.Map(SupportedAccessScopes(), func(s string, _ int) any { return s })
	return vd.Validate(arr.StringArray(), vd.Each(vd.Required, vd.In(scopes...)))
}
