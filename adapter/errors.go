package adapter

import "errors"

var (
	// ErrReferenceNotFound 保存対象が参照する先のレコードが存在しません
	ErrReferenceNotFound = errors.New("adapter: referenced record not found")
	// ErrStorageUnavailable ストレージへの書き込みに失敗しました
	ErrStorageUnavailable = errors.New("adapter: storage unavailable")
)
