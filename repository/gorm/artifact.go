package gorm

import (
	"time"

	"gorm.io/gorm/clause"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
)

// SaveArtifact implements ArtifactRepository interface.
func (repo *Repository) SaveArtifact(kind model.ArtifactKind, artifact *model.Artifact) error {
	if artifact == nil || len(artifact.ID) == 0 {
		return repository.ErrNilID
	}
	if err := kind.Validate(); err != nil {
		return repository.ArgError("kind", err.Error())
	}
	return repo.db.
		Table(kind.TableName()).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"uid", "user_code", "grant_id", "data", "expires_at",
			}),
		}).
		Create(artifact).Error
}

// GetArtifactByID implements ArtifactRepository interface.
func (repo *Repository) GetArtifactByID(kind model.ArtifactKind, id string) (*model.Artifact, error) {
	if len(id) == 0 {
		return nil, repository.ErrNotFound
	}
	if err := kind.Validate(); err != nil {
		return nil, repository.ArgError("kind", err.Error())
	}
	a := &model.Artifact{}
	if err := repo.db.
		Table(kind.TableName()).
		Where("id = ?", id).
		Take(a).Error; err != nil {
		return nil, convertError(err)
	}
	return a, nil
}

// GetArtifactByUID implements ArtifactRepository interface.
func (repo *Repository) GetArtifactByUID(kind model.ArtifactKind, uid string) (*model.Artifact, error) {
	if len(uid) == 0 {
		return nil, repository.ErrNotFound
	}
	if err := kind.Validate(); err != nil {
		return nil, repository.ArgError("kind", err.Error())
	}
	a := &model.Artifact{}
	if err := repo.db.
		Table(kind.TableName()).
		Where("uid = ?", uid).
		Take(a).Error; err != nil {
		return nil, convertError(err)
	}
	return a, nil
}

// GetArtifactByUserCode implements ArtifactRepository interface.
func (repo *Repository) GetArtifactByUserCode(kind model.ArtifactKind, userCode string) (*model.Artifact, error) {
	if len(userCode) == 0 {
		return nil, repository.ErrNotFound
	}
	if err := kind.Validate(); err != nil {
		return nil, repository.ArgError("kind", err.Error())
	}
	a := &model.Artifact{}
	if err := repo.db.
		Table(kind.TableName()).
		Where("user_code = ?", userCode).
		Take(a).Error; err != nil {
		return nil, convertError(err)
	}
	return a, nil
}

// ConsumeArtifact implements ArtifactRepository interface.
func (repo *Repository) ConsumeArtifact(kind model.ArtifactKind, id string, redeemedAt time.Time) error {
	if len(id) == 0 {
		return repository.ErrNilID
	}
	if err := kind.Validate(); err != nil {
		return repository.ArgError("kind", err.Error())
	}
	a, err := repo.GetArtifactByID(kind, id)
	if err != nil {
		return err
	}
	// 再消費は呼び出し側からは冪等だが、最新の消費時刻は記録し直す
	data := a.Data.Clone()
	data.SetConsumed(redeemedAt.Unix())
	return repo.db.
		Table(kind.TableName()).
		Where("id = ?", id).
		Update("data", data).Error
}

// DeleteArtifact implements ArtifactRepository interface.
func (repo *Repository) DeleteArtifact(kind model.ArtifactKind, id string) error {
	if len(id) == 0 {
		return nil
	}
	if err := kind.Validate(); err != nil {
		return repository.ArgError("kind", err.Error())
	}
	return repo.db.
		Table(kind.TableName()).
		Where("id = ?", id).
		Delete(&model.Artifact{}).Error
}

// DeleteArtifactsByGrantID implements ArtifactRepository interface.
func (repo *Repository) DeleteArtifactsByGrantID(kind model.ArtifactKind, grantID string) (int64, error) {
	if len(grantID) == 0 {
		return 0, nil
	}
	if err := kind.Validate(); err != nil {
		return 0, repository.ArgError("kind", err.Error())
	}
	result := repo.db.
		Table(kind.TableName()).
		Where("grant_id = ?", grantID).
		Delete(&model.Artifact{})
	return result.RowsAffected, result.Error
}

// DeleteExpiredArtifacts implements ArtifactRepository interface.
func (repo *Repository) DeleteExpiredArtifacts(kind model.ArtifactKind, before time.Time) (int64, error) {
	if err := kind.Validate(); err != nil {
		return 0, repository.ArgError("kind", err.Error())
	}
	result := repo.db.
		Table(kind.TableName()).
		Where("expires_at IS NOT NULL AND expires_at < ?", before).
		Delete(&model.Artifact{})
	return result.RowsAffected, result.Error
}
