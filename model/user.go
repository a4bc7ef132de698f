package model

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
)

// User アカウント参照用のユーザー構造体
//
// 資格情報の検証は外部コラボレーターの責務のため、
// このモジュールではクレーム解決に必要な属性のみを扱います。
type User struct {
	ID            uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Name          string      `gorm:"type:varchar(100);not null;unique"`
	DisplayName   string      `gorm:"type:varchar(200)"`
	Email         string      `gorm:"type:varchar(255);not null;unique"`
	EmailVerified bool        `gorm:"type:boolean;default:false"`
	FamilyName    null.String `gorm:"type:varchar(100)"`
	GivenName     null.String `gorm:"type:varchar(100)"`
	Picture       null.String `gorm:"type:text"`
	Active        bool        `gorm:"type:boolean;not null;default:true"`
	CreatedAt     time.Time   `gorm:"precision:6"`
	UpdatedAt     time.Time   `gorm:"precision:6"`
}

// TableName Userのテーブル名
func (*User) TableName() string {
	return "users"
}

// FullName 表示用の氏名を返します
func (u *User) FullName() string {
	if len(u.DisplayName) > 0 {
		return u.DisplayName
	}
	if u.GivenName.Valid && u.FamilyName.Valid {
		return u.GivenName.String + " " + u.FamilyName.String
	}
	return u.Name
}
