package model

import (
	"time"

	"github.com/guregu/null"
)

// Artifact 単一テーブルレイアウトで使用するアーティファクト行の構造体
//
// 種別ごとに同じカラム構成のテーブルを1つずつ持ち、テーブル名は
// ArtifactKind.TableName()でクエリ時に決定します。このためTableName
// メソッドは持ちません。UID・UserCode・GrantIDはペイロードから抽出した
// 検索用カラムで、ペイロード全体の走査を避けるためのものです。
type Artifact struct {
	ID        string      `gorm:"type:varchar(191);primaryKey"`
	UID       string      `gorm:"type:varchar(191);not null"`
	UserCode  null.String `gorm:"type:varchar(64)"`
	GrantID   null.String `gorm:"type:varchar(191)"`
	Data      Payload     `gorm:"type:json;not null"`
	ExpiresAt null.Time   `gorm:"precision:6"`
	CreatedAt time.Time   `gorm:"precision:6"`
}

// IsExpired 指定時刻の時点で有効期限が切れているかどうか
func (a *Artifact) IsExpired(now time.Time) bool {
	return a.ExpiresAt.Valid && !a.ExpiresAt.Time.After(now)
}
