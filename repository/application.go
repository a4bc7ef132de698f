package repository

import (
	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/utils/optional"
)

// UpdateApplicationArgs クライアントアプリケーション更新引数
type UpdateApplicationArgs struct {
	DisplayName            optional.Of[string]
	ClientSecret           optional.Of[string]
	ClientType             optional.Of[string]
	ConsentType            optional.Of[string]
	Permissions            model.Permissions
	RedirectURIs           model.URIs
	PostLogoutRedirectURIs model.URIs
}

// ApplicationRepository クライアントアプリケーションリポジトリ
type ApplicationRepository interface {
	// CreateApplication アプリケーションを作成します
	//
	// 成功した場合、nilを返します。IDが未設定の場合は自動で発行します。
	// client_idが既に使われている場合、ErrAlreadyExistsを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	CreateApplication(app *model.Application) error
	// SaveApplication アプリケーションを保存します
	//
	// 同じclient_idのアプリケーションが既に存在する場合は内容を上書きし、存在しない場合は新規作成します。
	// 成功した場合、nilを返します。保存の度にconcurrency_stampを再発行します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	SaveApplication(app *model.Application) error
	// GetApplicationByID 指定したIDのアプリケーションを取得します
	//
	// 成功した場合、アプリケーションとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetApplicationByID(id string) (*model.Application, error)
	// GetApplicationByClientID 指定したclient_idのアプリケーションを取得します
	//
	// 成功した場合、アプリケーションとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetApplicationByClientID(clientID string) (*model.Application, error)
	// GetApplications 全てのアプリケーションを取得します
	//
	// 成功した場合、アプリケーションの配列とnilを返します。
	// DBによるエラーを返すことがあります。
	GetApplications() ([]*model.Application, error)
	// UpdateApplication 指定したclient_idのアプリケーション情報を変更します
	//
	// 成功した場合、nilを返します。更新の度にconcurrency_stampを再発行します。
	// 存在しないアプリケーションの場合、ErrNotFoundを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	UpdateApplication(clientID string, args UpdateApplicationArgs) error
	// DeleteApplication 指定したclient_idのアプリケーションを論理削除します
	//
	// 成功した場合、nilを返します。
	// 存在しないアプリケーションの場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	DeleteApplication(clientID string) error
}
