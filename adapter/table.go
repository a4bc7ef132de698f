package adapter

import (
	"errors"
	"time"

	"github.com/guregu/null"
	"go.uber.org/zap"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
)

// TableFactory 種別ごとの専用テーブルを使うStoreファクトリ
//
// 全種別を(id, uid, user_code, grant_id, data, expires_at)の同一カラム構成で
// 保存する最小レイアウトです。状態カラムを持たないため、失効は物理削除で
// 表現します。正規化レイアウトと同じ操作セットを満たします。
type TableFactory struct {
	repo   repository.ArtifactRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTableFactory TableFactoryを生成します
func NewTableFactory(repo repository.ArtifactRepository, logger *zap.Logger) *TableFactory {
	return &TableFactory{
		repo:   repo,
		logger: logger.Named("adapter"),
		now:    time.Now,
	}
}

// Store implements Factory interface.
func (f *TableFactory) Store(name string) (Store, error) {
	kind, ok := model.ParseArtifactKind(name)
	if !ok {
		return nil, unknownKindError(name)
	}
	return &artifactStore{f: f, kind: kind}, nil
}

// artifactStore 種別別テーブルに保存するStore実装
type artifactStore struct {
	f    *TableFactory
	kind model.ArtifactKind
}

// Upsert implements Store interface.
func (s *artifactStore) Upsert(id string, payload model.Payload, ttlSeconds int) error {
	artifact := &model.Artifact{
		ID:   id,
		UID:  payload.UID(),
		Data: payload.Clone(),
	}
	if uc := payload.UserCode(); len(uc) > 0 {
		artifact.UserCode = null.StringFrom(uc)
	}
	if g := payload.GrantID(); len(g) > 0 {
		artifact.GrantID = null.StringFrom(g)
	}
	if exp, ok := computeExpiry(s.f.now(), ttlSeconds); ok {
		artifact.ExpiresAt = null.TimeFrom(exp)
	}

	if err := s.f.repo.SaveArtifact(s.kind, artifact); err != nil {
		return storageError(err)
	}
	return nil
}

// Find implements Store interface.
func (s *artifactStore) Find(id string) (model.Payload, error) {
	artifact, err := s.f.repo.GetArtifactByID(s.kind, id)
	if errors.Is(err, repository.ErrNotFound) && s.kind.UsesUIDLookup() {
		artifact, err = s.f.repo.GetArtifactByUID(s.kind, id)
	}
	return s.livePayload(artifact, err)
}

// FindByUID implements Store interface.
func (s *artifactStore) FindByUID(uid string) (model.Payload, error) {
	artifact, err := s.f.repo.GetArtifactByUID(s.kind, uid)
	return s.livePayload(artifact, err)
}

// FindByUserCode implements Store interface.
func (s *artifactStore) FindByUserCode(userCode string) (model.Payload, error) {
	artifact, err := s.f.repo.GetArtifactByUserCode(s.kind, userCode)
	return s.livePayload(artifact, err)
}

// Destroy implements Store interface.
func (s *artifactStore) Destroy(id string) error {
	if err := s.f.repo.DeleteArtifact(s.kind, id); err != nil {
		return storageError(err)
	}
	return nil
}

// RevokeByGrantID implements Store interface.
func (s *artifactStore) RevokeByGrantID(grantID string) error {
	if _, err := s.f.repo.DeleteArtifactsByGrantID(s.kind, grantID); err != nil {
		return storageError(err)
	}
	return nil
}

// Consume implements Store interface.
func (s *artifactStore) Consume(id string) error {
	err := s.f.repo.ConsumeArtifact(s.kind, id, s.f.now())
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storageError(err)
	}
	return nil
}

func (s *artifactStore) livePayload(artifact *model.Artifact, err error) (model.Payload, error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, nil
	case err != nil:
		s.f.logger.Warn("artifact lookup failed", zap.String("table", s.kind.TableName()), zap.Error(err))
		return nil, nil
	}
	if !Live(artifact.Data, artifact.ExpiresAt, s.f.now()) {
		// 状態カラムを持たないため、期限切れはベストエフォートで行ごと削除する
		if err := s.f.repo.DeleteArtifact(s.kind, artifact.ID); err != nil {
			s.f.logger.Debug("failed to delete expired artifact", zap.String("id", artifact.ID), zap.Error(err))
		}
		return nil, nil
	}
	return artifact.Data.Clone(), nil
}
