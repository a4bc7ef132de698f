package model

import (
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/guregu/null"
	"gorm.io/gorm"
)

const (
	// ClientTypePublic シークレットを持たないパブリッククライアント
	ClientTypePublic = "public"
	// ClientTypeConfidential シークレットで認証するコンフィデンシャルクライアント
	ClientTypeConfidential = "confidential"

	// PermissionGrantTypePrefix 許可グラントタイプを表すパーミッションの接頭辞
	PermissionGrantTypePrefix = "gt:"
	// PermissionScopePrefix 許可スコープを表すパーミッションの接頭辞
	PermissionScopePrefix = "scp:"
)

// Permissions クライアントに許可された操作のリスト
//
// "gt:"接頭辞はグラントタイプ、"scp:"接頭辞はスコープの許可を表します。
type Permissions []string

// Value database/sql/driver.Valuer 実装
func (p Permissions) Value() (driver.Value, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString([]string(p))
}

// Scan database/sql.Scanner 実装
func (p *Permissions) Scan(src any) error {
	return scanStringArray((*[]string)(p), src, "Permissions")
}

// URIs URIのリスト
type URIs []string

// Value database/sql/driver.Valuer 実装
func (u URIs) Value() (driver.Value, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString([]string(u))
}

// Scan database/sql.Scanner 実装
func (u *URIs) Scan(src any) error {
	return scanStringArray((*[]string)(u), src, "URIs")
}

func scanStringArray(dst *[]string, src any, name string) error {
	switch s := src.(type) {
	case nil:
		*dst = nil
		return nil
	case string:
		return jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(s, dst)
	case []byte:
		return jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(s, dst)
	default:
		return errors.New("failed to scan " + name)
	}
}

// Application 登録済みOAuthクライアントの構造体
type Application struct {
	ID                     string         `gorm:"type:char(36);primaryKey"`
	ClientID               string         `gorm:"type:varchar(100);not null;unique"`
	ClientSecret           null.String    `gorm:"type:text"`
	ClientType             string         `gorm:"type:varchar(50);not null;default:'public'"`
	DisplayName            string         `gorm:"type:text"`
	ConsentType            string         `gorm:"type:varchar(50)"`
	Permissions            Permissions    `gorm:"type:json"`
	RedirectURIs           URIs           `gorm:"type:json"`
	PostLogoutRedirectURIs URIs           `gorm:"type:json"`
	Properties             Payload        `gorm:"type:json"`
	ConcurrencyStamp       string         `gorm:"type:varchar(40);not null"`
	CreatedAt              time.Time      `gorm:"precision:6"`
	UpdatedAt              time.Time      `gorm:"precision:6"`
	DeletedAt              gorm.DeletedAt `gorm:"precision:6"`
}

// TableName Applicationのテーブル名
func (*Application) TableName() string {
	return "applications"
}

// Confidential コンフィデンシャルクライアントかどうか
func (app *Application) Confidential() bool {
	return app.ClientType == ClientTypeConfidential
}

// GrantTypes クライアントに許可されたグラントタイプを返します
func (app *Application) GrantTypes() []string {
	return app.permissionsWithPrefix(PermissionGrantTypePrefix)
}

// AllowedScopes クライアントに許可されたスコープを返します
func (app *Application) AllowedScopes() AccessScopes {
	scopes := AccessScopes{}
	for _, s := range app.permissionsWithPrefix(PermissionScopePrefix) {
		scopes.Add(AccessScope(s))
	}
	return scopes
}

func (app *Application) permissionsWithPrefix(prefix string) []string {
	r := make([]string, 0, len(app.Permissions))
	for _, p := range app.Permissions {
		if strings.HasPrefix(p, prefix) {
			r = append(r, strings.TrimPrefix(p, prefix))
		}
	}
	return r
}

// Validate github.com/go-ozzo/ozzo-validation.Validatable 実装
func (app *Application) Validate() error {
	return vd.ValidateStruct(app,
		vd.Field(&app.ClientID, vd.Required, vd.RuneLength(1, 100)),
		vd.Field(&app.ClientType, vd.Required, vd.In(ClientTypePublic, ClientTypeConfidential)),
		vd.Field(&app.ClientSecret, vd.By(func(any) error {
			if app.Confidential() && !app.ClientSecret.Valid {
				return errors.New("confidential client requires a secret")
			}
			return nil
		})),
	)
}
