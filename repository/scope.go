package repository

import (
	"github.com/traPtitech/oidp/model"
)

// ScopeRepository スコープ定義リポジトリ
type ScopeRepository interface {
	// CreateScope スコープ定義を作成します
	//
	// 成功した場合、nilを返します。IDが未設定の場合は自動で発行します。
	// 同名のスコープが既に存在する場合、ErrAlreadyExistsを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	CreateScope(scope *model.Scope) error
	// GetScopeByName 指定した名前のスコープ定義を取得します
	//
	// 成功した場合、スコープ定義とnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetScopeByName(name string) (*model.Scope, error)
	// GetScopes 全てのスコープ定義を取得します
	//
	// 成功した場合、スコープ定義の配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetScopes() ([]*model.Scope, error)
}
