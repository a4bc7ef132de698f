package oidc

import (
	"errors"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
)

type Service struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewOIDCService(repo repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.Named("oidc"),
	}
}

type ScopeChecker interface {
	Contains(scope model.AccessScope) bool
}

// Account エンジンのfindAccountに応答するアカウント表現
type Account struct {
	user *model.User
}

// Sub アカウントのsubject識別子
func (a *Account) Sub() string {
	return a.user.ID.String()
}

// FindAccountBySubject subjectに対応する有効なアカウントを検索します
//
// subjectはユーザーIDを優先して解決し、見つからない場合はユーザー名でも
// 検索します。無効化されたユーザーや存在しないsubjectは(nil, nil)を返します。
func (s *Service) FindAccountBySubject(subject string) (*Account, error) {
	if len(subject) == 0 {
		return nil, nil
	}

	user, err := s.resolveUser(subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.Active {
		return nil, nil
	}
	return &Account{user: user}, nil
}

func (s *Service) resolveUser(subject string) (*model.User, error) {
	if id, err := uuid.FromString(subject); err == nil {
		user, err := s.repo.GetUserByID(id)
		if err == nil || !errors.Is(err, repository.ErrNotFound) {
			return user, err
		}
	}
	return s.repo.GetUserByName(subject)
}

// Claims 要求されたスコープに応じたクレームマップを構築します
//
// subは常に含まれます。profileスコープで氏名・表示名・画像を、
// emailスコープでメールアドレスと確認状態を返します。
func (a *Account) Claims(scopes ScopeChecker) map[string]any {
	user := a.user

	claims := make(map[string]any)
	claims["sub"] = a.Sub()

	if scopes.Contains("profile") {
		claims["name"] = user.FullName()
		claims["preferred_username"] = user.Name
		claims["updated_at"] = user.UpdatedAt.Unix()
		if len(user.DisplayName) > 0 {
			claims["nickname"] = user.DisplayName
		}
		if user.FamilyName.Valid {
			claims["family_name"] = user.FamilyName.String
		}
		if user.GivenName.Valid {
			claims["given_name"] = user.GivenName.String
		}
		if user.Picture.Valid {
			claims["picture"] = user.Picture.String
		}
	}

	if scopes.Contains("email") {
		claims["email"] = user.Email
		claims["email_verified"] = user.EmailVerified
	}

	return claims
}
