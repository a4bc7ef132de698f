package repository

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/oidp/model"
)

// CreateUserArgs ユーザー作成引数
type CreateUserArgs struct {
	Name          string
	DisplayName   string
	Email         string
	EmailVerified bool
	FamilyName    string
	GivenName     string
	Picture       string
}

// UserRepository ユーザーリポジトリ
type UserRepository interface {
	// CreateUser ユーザーを作成します
	//
	// 成功した場合、作成したユーザーとnilを返します。
	// 名前またはメールアドレスが既に使われている場合、ErrAlreadyExistsを返します。
	// 引数に問題がある場合、ArgumentErrorを返します。
	// DBによるエラーを返すことがあります。
	CreateUser(args CreateUserArgs) (*model.User, error)
	// GetUserByID 指定したIDのユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetUserByID(id uuid.UUID) (*model.User, error)
	// GetUserByName 指定した名前のユーザーを取得します
	//
	// 成功した場合、ユーザーとnilを返します。
	// 存在しなかった場合、ErrNotFoundを返します。
	// DBによるエラーを返すことがあります。
	GetUserByName(name string) (*model.User, error)
}
