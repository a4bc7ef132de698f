package repository

import (
	"github.com/traPtitech/oidp/model"
)

// AuthorizationRepository 認可グラントリポジトリ
type AuthorizationRepository interface {
	// SaveAuthorization 認可グラントを保存します
	//
	// 同じIDのグラントが既に存在する場合は内容を上書きし、存在しない場合は新規作成します。
	// 成功した場合、nilを返します。保存の度にconcurrency_stampを再発行します。
	// 参照先のアプリケーションが存在しない場合、ErrReferenceNotFoundを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	SaveAuthorization(auth *model.Authorization) error
	// GetAuthorization 指定したIDの認可グラントを取得します
	//
	// 成功した場合、認可グラントとnilを返します。論理削除されたグラントは対象外です。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetAuthorization(id string) (*model.Authorization, error)
	// GetAuthorizationsBySubject 指定したユーザーの認可グラントを全て取得します
	//
	// 成功した場合、認可グラントの配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetAuthorizationsBySubject(subject string) ([]*model.Authorization, error)
	// RevokeAuthorization 指定したIDの認可グラントを失効させ、論理削除します
	//
	// 成功した場合、nilを返します。既に削除済みの場合も成功扱いです。
	// DBによるエラーを返すことがあります。
	RevokeAuthorization(id string) error
}
