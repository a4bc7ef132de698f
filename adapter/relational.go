package adapter

import (
	"errors"
	"time"

	"github.com/guregu/null"
	"go.uber.org/zap"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
)

// RelationalFactory 正規化スキーマ(applications/authorizations/tokens)を使うStoreファクトリ
//
// Grant種別はauthorizationsテーブル、Client種別はapplicationsテーブル、
// その他の種別は全てtokensテーブルにtypeカラムで区別して保存します。
type RelationalFactory struct {
	repo   repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRelationalFactory RelationalFactoryを生成します
func NewRelationalFactory(repo repository.Repository, logger *zap.Logger) *RelationalFactory {
	return &RelationalFactory{
		repo:   repo,
		logger: logger.Named("adapter"),
		now:    time.Now,
	}
}

// Store implements Factory interface.
func (f *RelationalFactory) Store(name string) (Store, error) {
	kind, ok := model.ParseArtifactKind(name)
	if !ok {
		return nil, unknownKindError(name)
	}
	switch kind {
	case model.KindGrant:
		return &grantStore{f: f}, nil
	case model.KindClient:
		return &clientStore{f: f}, nil
	default:
		return &tokenStore{f: f, kind: kind}, nil
	}
}

// tokenStore tokensテーブルに保存する種別のStore実装
type tokenStore struct {
	f    *RelationalFactory
	kind model.ArtifactKind
}

// Upsert implements Store interface.
func (s *tokenStore) Upsert(id string, payload model.Payload, ttlSeconds int) error {
	token := &model.Token{
		ReferenceID: id,
		Type:        s.kind.TokenType(),
		Subject:     payload.AccountID(),
		Payload:     payload.Clone(),
		Status:      model.TokenStatusValid,
	}
	if uid := payload.UID(); len(uid) > 0 {
		token.UID = null.StringFrom(uid)
	}
	if uc := payload.UserCode(); len(uc) > 0 {
		token.UserCode = null.StringFrom(uc)
	}
	if g := payload.GrantID(); len(g) > 0 {
		_, err := s.f.repo.GetAuthorization(g)
		switch {
		case err == nil:
			token.AuthorizationID = null.StringFrom(g)
		case errors.Is(err, repository.ErrNotFound):
			// グラント行が未登録の参照はペイロード内にのみ保持する
		default:
			return storageError(err)
		}
	}
	if cid := payload.ClientID(); len(cid) > 0 {
		app, err := s.f.repo.GetApplicationByClientID(cid)
		switch {
		case err == nil:
			token.ApplicationID = null.StringFrom(app.ID)
		case errors.Is(err, repository.ErrNotFound):
			// 未登録クライアントのトークンは参照カラムを空のままにする
		default:
			return storageError(err)
		}
	}
	if exp, ok := computeExpiry(s.f.now(), ttlSeconds); ok {
		token.ExpiresAt = null.TimeFrom(exp)
	}

	if err := s.f.repo.SaveToken(token); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return ErrReferenceNotFound
		}
		return storageError(err)
	}
	return nil
}

// Find implements Store interface.
func (s *tokenStore) Find(id string) (model.Payload, error) {
	token, err := s.f.repo.GetTokenByReferenceID(id)
	if errors.Is(err, repository.ErrNotFound) && s.kind.UsesUIDLookup() {
		token, err = s.f.repo.GetTokenByUID(s.kind.TokenType(), id)
	}
	return s.livePayload(token, err)
}

// FindByUID implements Store interface.
func (s *tokenStore) FindByUID(uid string) (model.Payload, error) {
	token, err := s.f.repo.GetTokenByUID(s.kind.TokenType(), uid)
	return s.livePayload(token, err)
}

// FindByUserCode implements Store interface.
func (s *tokenStore) FindByUserCode(userCode string) (model.Payload, error) {
	token, err := s.f.repo.GetTokenByUserCode(s.kind.TokenType(), userCode)
	return s.livePayload(token, err)
}

// Destroy implements Store interface.
func (s *tokenStore) Destroy(id string) error {
	if err := s.f.repo.DeleteTokenByReferenceID(id); err != nil {
		return storageError(err)
	}
	return nil
}

// RevokeByGrantID implements Store interface.
func (s *tokenStore) RevokeByGrantID(grantID string) error {
	if _, err := s.f.repo.RevokeTokensByAuthorizationID(grantID); err != nil {
		return storageError(err)
	}
	return nil
}

// Consume implements Store interface.
func (s *tokenStore) Consume(id string) error {
	err := s.f.repo.ConsumeToken(id, s.f.now())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storageError(err)
	}
	return nil
}

func (s *tokenStore) livePayload(token *model.Token, err error) (model.Payload, error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		s.f.logger.Warn("token lookup failed", zap.String("type", s.kind.TokenType()), zap.Error(err))
		return nil, nil
	}
	if token.IsRevoked() {
		return nil, nil
	}
	if !Live(token.Payload, token.ExpiresAt, s.f.now()) {
		// 期限切れの観測をベストエフォートで記録する
		if err := s.f.repo.SetTokenStatus(token.ReferenceID, model.TokenStatusExpired); err != nil {
			s.f.logger.Debug("failed to mark token expired", zap.String("reference_id", token.ReferenceID), zap.Error(err))
		}
		return nil, nil
	}
	return token.Payload.Clone(), nil
}

// grantStore authorizationsテーブルに保存するGrant種別のStore実装
type grantStore struct {
	f *RelationalFactory
}

// Upsert implements Store interface.
func (s *grantStore) Upsert(id string, payload model.Payload, _ int) error {
	clientID := payload.ClientID()
	if len(clientID) == 0 {
		return ErrReferenceNotFound
	}
	app, err := s.f.repo.GetApplicationByClientID(clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReferenceNotFound
		}
		return storageError(err)
	}

	auth := &model.Authorization{
		ID:            id,
		ApplicationID: app.ID,
		Subject:       payload.AccountID(),
		Scopes:        payload.Scopes(),
		Status:        model.AuthorizationStatusValid,
		Type:          model.AuthorizationTypePermanent,
		Properties:    payload.Clone(),
	}
	if err := s.f.repo.SaveAuthorization(auth); err != nil {
		if errors.Is(err, repository.ErrReferenceNotFound) {
			return ErrReferenceNotFound
		}
		return storageError(err)
	}
	return nil
}

// Find implements Store interface.
func (s *grantStore) Find(id string) (model.Payload, error) {
	auth, err := s.f.repo.GetAuthorization(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		s.f.logger.Warn("authorization lookup failed", zap.String("authorization_id", id), zap.Error(err))
		return nil, nil
	}
	if !auth.IsValid() {
		return nil, nil
	}
	if !Live(auth.Properties, null.Time{}, s.f.now()) {
		return nil, nil
	}
	return auth.EffectiveProperties(), nil
}

// FindByUID implements Store interface.
func (s *grantStore) FindByUID(_ string) (model.Payload, error) {
	return nil, nil
}

// FindByUserCode implements Store interface.
func (s *grantStore) FindByUserCode(_ string) (model.Payload, error) {
	return nil, nil
}

// Destroy implements Store interface.
//
// 認可グラント自体を失効させるのみで、依存するトークンの失効は行いません。
// エンジンはトークンの一括失効をRevokeByGrantIDで別途指示します。
func (s *grantStore) Destroy(id string) error {
	if err := s.f.repo.RevokeAuthorization(id); err != nil {
		return storageError(err)
	}
	return nil
}

// RevokeByGrantID implements Store interface.
func (s *grantStore) RevokeByGrantID(grantID string) error {
	if _, err := s.f.repo.RevokeTokensByAuthorizationID(grantID); err != nil {
		return storageError(err)
	}
	return nil
}

// Consume implements Store interface.
func (s *grantStore) Consume(id string) error {
	auth, err := s.f.repo.GetAuthorization(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return storageError(err)
	}
	props := auth.Properties.Clone()
	props.SetConsumed(s.f.now().Unix())
	auth.Properties = props
	if err := s.f.repo.SaveAuthorization(auth); err != nil {
		return storageError(err)
	}
	return nil
}

// clientStore applicationsテーブルに保存するClient種別のStore実装
type clientStore struct {
	f *RelationalFactory
}

// Upsert implements Store interface.
func (s *clientStore) Upsert(id string, payload model.Payload, _ int) error {
	app := &model.Application{
		ClientID:               id,
		ClientType:             model.ClientTypePublic,
		DisplayName:            payload.StringField("client_name"),
		RedirectURIs:           payload.StringList("redirect_uris"),
		PostLogoutRedirectURIs: payload.StringList("post_logout_redirect_uris"),
		Properties:             payload.Clone(),
	}
	if secret := payload.StringField("client_secret"); len(secret) > 0 {
		app.ClientSecret = null.StringFrom(secret)
		app.ClientType = model.ClientTypeConfidential
	}
	perms := model.Permissions{}
	for _, gt := range payload.StringList("grant_types") {
		perms = append(perms, model.PermissionGrantTypePrefix+gt)
	}
	for _, sc := range payload.Scopes().StringArray() {
		perms = append(perms, model.PermissionScopePrefix+sc)
	}
	app.Permissions = perms

	if err := s.f.repo.SaveApplication(app); err != nil {
		return storageError(err)
	}
	return nil
}

// Find implements Store interface.
func (s *clientStore) Find(id string) (model.Payload, error) {
	app, err := s.f.repo.GetApplicationByClientID(id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		s.f.logger.Warn("application lookup failed", zap.String("client_id", id), zap.Error(err))
		return nil, nil
	}
	if len(app.Properties) > 0 {
		return app.Properties.Clone(), nil
	}
	// リポジトリ経由で登録されたアプリケーションは型付きカラムから復元する
	payload := model.Payload{
		"client_id":     app.ClientID,
		"client_name":   app.DisplayName,
		"redirect_uris": []string(app.RedirectURIs),
		"grant_types":   app.GrantTypes(),
		"scope":         app.AllowedScopes().String(),
	}
	if app.ClientSecret.Valid {
		payload["client_secret"] = app.ClientSecret.String
	}
	if len(app.PostLogoutRedirectURIs) > 0 {
		payload["post_logout_redirect_uris"] = []string(app.PostLogoutRedirectURIs)
	}
	return payload, nil
}

// FindByUID implements Store interface.
func (s *clientStore) FindByUID(_ string) (model.Payload, error) {
	return nil, nil
}

// FindByUserCode implements Store interface.
func (s *clientStore) FindByUserCode(_ string) (model.Payload, error) {
	return nil, nil
}

// Destroy implements Store interface.
func (s *clientStore) Destroy(id string) error {
	err := s.f.repo.DeleteApplication(id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storageError(err)
	}
	return nil
}

// RevokeByGrantID implements Store interface.
func (s *clientStore) RevokeByGrantID(_ string) error {
	return nil
}

// Consume implements Store interface.
func (s *clientStore) Consume(_ string) error {
	return nil
}
