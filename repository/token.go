package repository

import (
	"time"

	"github.com/traPtitech/oidp/model"
)

// TokenRepository プロトコルトークンリポジトリ
type TokenRepository interface {
	// SaveToken トークンを保存します
	//
	// 同じreference_idのトークンが既に存在する場合は内容を上書きし、存在しない場合は新規作成します。
	// 成功した場合、nilを返します。保存の度にconcurrency_stampを再発行します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	SaveToken(token *model.Token) error
	// GetTokenByReferenceID 指定したreference_idのトークンを取得します
	//
	// 成功した場合、トークンとnilを返します。論理削除されたトークンは対象外です。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetTokenByReferenceID(referenceID string) (*model.Token, error)
	// GetTokenByUID 指定した種別・uidのトークンを取得します
	//
	// 成功した場合、トークンとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetTokenByUID(tokenType, uid string) (*model.Token, error)
	// GetTokenByUserCode 指定した種別・user_codeのトークンを取得します
	//
	// 成功した場合、トークンとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetTokenByUserCode(tokenType, userCode string) (*model.Token, error)
	// SetTokenStatus 指定したreference_idのトークンの状態を変更します
	//
	// 成功した場合、nilを返します。
	// 存在しないトークンの場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	SetTokenStatus(referenceID string, status string) error
	// ConsumeToken 指定したreference_idのトークンを使用済みにします
	//
	// ペイロードに使用時刻を記録し、redeemed_atとconcurrency_stampを更新します。
	// 成功した場合、nilを返します。
	// 既に使用済みの場合も成功扱いで、最新の使用時刻を記録し直します。
	// 存在しないトークンの場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	ConsumeToken(referenceID string, redeemedAt time.Time) error
	// RevokeTokensByAuthorizationID 指定した認可グラントに紐づく全てのトークンを失効させます
	//
	// 成功した場合、失効させた件数とnilを返します。該当が無い場合も成功扱いです。
	// DBによるエラーを返すことがあります。
	RevokeTokensByAuthorizationID(authorizationID string) (int64, error)
	// DeleteTokenByReferenceID 指定したreference_idのトークンを失効させ、論理削除します
	//
	// 成功した場合、nilを返します。既に削除済みの場合も成功扱いです。
	// DBによるエラーを返すことがあります。
	DeleteTokenByReferenceID(referenceID string) error
	// DeleteExpiredTokens 有効期限を過ぎたトークンを物理削除します
	//
	// 成功した場合、削除した件数とnilを返します。
	// DBによるエラーを返すことがあります。
	DeleteExpiredTokens(before time.Time) (int64, error)
}
