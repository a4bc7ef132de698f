package model

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/guregu/null"
	"gorm.io/gorm"
)

const (
	// TokenStatusValid 有効なトークン
	TokenStatusValid = "valid"
	// TokenStatusConsumed 消費済みのトークン 読み出しは引き続き可能
	TokenStatusConsumed = "consumed"
	// TokenStatusRevoked 失効済みのトークン 終端状態
	TokenStatusRevoked = "revoked"
	// TokenStatusExpired 期限切れとして観測されたトークン
	//
	// 読み出し時に期限切れを検出した場合にベストエフォートで記録される
	// 派生状態であり、失効判定はこの値に依存しません。
	TokenStatusExpired = "expired"
)

// Token 短命なベアラーアーティファクトの構造体
//
// アクセストークン・認可コード・リフレッシュトークン・デバイスコード等の
// 全種別をtypeカラムで区別して単一テーブルに保存します。
// エンジンからの検索キーはReferenceIDであり、サロゲートキーIDとは別物です。
type Token struct {
	ID               uuid.UUID      `gorm:"type:char(36);primaryKey"`
	ReferenceID      string         `gorm:"type:varchar(191);not null;unique"`
	UID              null.String    `gorm:"type:varchar(191)"`
	UserCode         null.String    `gorm:"type:varchar(64)"`
	ApplicationID    null.String    `gorm:"type:char(36)"`
	AuthorizationID  null.String    `gorm:"type:varchar(191)"`
	Subject          string         `gorm:"type:varchar(191)"`
	Type             string         `gorm:"type:varchar(50);not null"`
	Payload          Payload        `gorm:"type:json"`
	ExpiresAt        null.Time      `gorm:"precision:6"`
	RedeemedAt       null.Time      `gorm:"precision:6"`
	Status           string         `gorm:"type:varchar(50);not null;default:'valid'"`
	ConcurrencyStamp string         `gorm:"type:varchar(40);not null"`
	CreatedAt        time.Time      `gorm:"precision:6"`
	UpdatedAt        time.Time      `gorm:"precision:6"`
	DeletedAt        gorm.DeletedAt `gorm:"precision:6"`
}

// TableName Tokenのテーブル名
func (*Token) TableName() string {
	return "tokens"
}

// IsExpired 指定時刻の時点で行レベルの有効期限が切れているかどうか
func (t *Token) IsExpired(now time.Time) bool {
	return t.ExpiresAt.Valid && !t.ExpiresAt.Time.After(now)
}

// IsRevoked 失効済みかどうか
func (t *Token) IsRevoked() bool {
	return t.Status == TokenStatusRevoked
}
