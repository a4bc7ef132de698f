package adapter

import (
	"time"

	"github.com/guregu/null"

	"github.com/traPtitech/oidp/model"
)

// Live 指定時刻の時点でレコードが有効かどうかを返します
//
// 行レベルの有効期限とペイロードに埋め込まれたexp(Unix秒)の両方を検査します。
// エンジンは行の有効期限とは独立に自前のexpを埋め込むことがあるため、
// どちらか一方でも過去を指していれば無効と判定します。
func Live(payload model.Payload, expiresAt null.Time, now time.Time) bool {
	if expiresAt.Valid && !expiresAt.Time.After(now) {
		return false
	}
	if exp := payload.Exp(); exp > 0 && exp <= now.Unix() {
		return false
	}
	return true
}
