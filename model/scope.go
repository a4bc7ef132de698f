package model

import (
	"time"

	"gorm.io/gorm"
)

// Scope 登録済みスコープの構造体
type Scope struct {
	ID               string         `gorm:"type:char(36);primaryKey"`
	Name             string         `gorm:"type:varchar(200);not null;unique"`
	DisplayName      string         `gorm:"type:text"`
	Description      string         `gorm:"type:text"`
	ConcurrencyStamp string         `gorm:"type:varchar(40);not null"`
	CreatedAt        time.Time      `gorm:"precision:6"`
	UpdatedAt        time.Time      `gorm:"precision:6"`
	DeletedAt        gorm.DeletedAt `gorm:"precision:6"`
}

// TableName Scopeのテーブル名
func (*Scope) TableName() string {
	return "scopes"
}
