package adapter

import (
	"fmt"
	"time"

	"github.com/traPtitech/oidp/model"
)

// Store プロトコルエンジンが呼び出すアーティファクト種別ごとの操作セット
//
// 検索系(Find系)はレコードが存在しない場合にエラーではなく(nil, nil)を
// 返します。期限切れ・失効済み・削除済みのレコードも存在しないものとして
// 扱います。検索系でのストレージ障害もログの上で(nil, nil)に丸められます。
// プロトコルエラー応答にストレージ起因のエラーを混入させないための方針です。
// 書き込み系はストレージ障害をErrStorageUnavailableとして返します。
type Store interface {
	// Upsert idのレコードを挿入または全体を上書きします
	//
	// ttlSecondsが正の場合、現在時刻からの有効期限を設定します。0以下の場合は無期限です。
	// 参照先が存在しない場合、ErrReferenceNotFoundを返します。
	Upsert(id string, payload model.Payload, ttlSeconds int) error
	// Find idのレコードのペイロードを返します
	Find(id string) (model.Payload, error)
	// FindByUID uidが一致するレコードのペイロードを返します
	FindByUID(uid string) (model.Payload, error)
	// FindByUserCode user_codeが一致するレコードのペイロードを返します
	FindByUserCode(userCode string) (model.Payload, error)
	// Destroy idのレコードを削除します 存在しない場合も成功扱いです
	Destroy(id string) error
	// RevokeByGrantID grantIDに紐づく全レコードを失効させます
	RevokeByGrantID(grantID string) error
	// Consume idのレコードのペイロードに使用済み時刻を記録します 存在しない場合は何もしません
	Consume(id string) error
}

// Factory アーティファクト種別名からStoreを引くインターフェイス
type Factory interface {
	// Store 種別名に対応するStoreを返します
	//
	// 未知の種別名の場合、エラーを返します。
	Store(name string) (Store, error)
}

func unknownKindError(name string) error {
	return fmt.Errorf("adapter: unknown artifact kind: %s", name)
}

func storageError(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

func computeExpiry(now time.Time, ttlSeconds int) (time.Time, bool) {
	if ttlSeconds <= 0 {
		return time.Time{}, false
	}
	return now.Add(time.Duration(ttlSeconds) * time.Second), true
}
