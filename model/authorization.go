package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	// AuthorizationStatusValid 有効な認可グラント
	AuthorizationStatusValid = "valid"
	// AuthorizationStatusRevoked 失効済みの認可グラント 終端状態
	AuthorizationStatusRevoked = "revoked"

	// AuthorizationTypePermanent 永続的な認可グラント
	AuthorizationTypePermanent = "permanent"
)

// Authorization 同意に基づく認可グラントの構造体
//
// IDはエンジンが採番します。トークンと異なり長期間生存し、
// 失効後も監査のためにレコード自体は保持されます。
type Authorization struct {
	ID               string         `gorm:"type:varchar(191);primaryKey"`
	ApplicationID    string         `gorm:"type:char(36);not null"`
	Subject          string         `gorm:"type:varchar(191)"`
	Scopes           AccessScopes   `gorm:"type:text"`
	Status           string         `gorm:"type:varchar(50);not null;default:'valid'"`
	Type             string         `gorm:"type:varchar(50);not null;default:'permanent'"`
	Properties       Payload        `gorm:"type:json"`
	ConcurrencyStamp string         `gorm:"type:varchar(40);not null"`
	CreatedAt        time.Time      `gorm:"precision:6"`
	UpdatedAt        time.Time      `gorm:"precision:6"`
	DeletedAt        gorm.DeletedAt `gorm:"precision:6"`
}

// TableName Authorizationのテーブル名
func (*Authorization) TableName() string {
	return "authorizations"
}

// IsValid 認可グラントが有効かどうか
func (a *Authorization) IsValid() bool {
	return a.Status == AuthorizationStatusValid
}

// EffectiveProperties 再構成したプロパティを返します
//
// scopesは型付きカラムが正となるため、保存されているJSONの値ではなく
// カラムの内容で上書きしたコピーを返します。
func (a *Authorization) EffectiveProperties() Payload {
	p := a.Properties.Clone()
	if len(a.Scopes) > 0 {
		p["scopes"] = a.Scopes.StringArray()
	}
	return p
}
