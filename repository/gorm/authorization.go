package gorm

import (
	"errors"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/traPtitech/oidp/event"
	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/gormutil"
)

// SaveAuthorization implements AuthorizationRepository interface.
func (repo *Repository) SaveAuthorization(auth *model.Authorization) error {
	if auth == nil || len(auth.ID) == 0 {
		return repository.ErrNilID
	}
	if len(auth.ApplicationID) == 0 {
		return repository.ArgError("auth.ApplicationID", "ApplicationID is required")
	}
	auth.ConcurrencyStamp = uuid.Must(uuid.NewV4()).String()
	if len(auth.Status) == 0 {
		auth.Status = model.AuthorizationStatusValid
	}
	if len(auth.Type) == 0 {
		auth.Type = model.AuthorizationTypePermanent
	}

	var created bool
	save := func() error {
		created = false
		return repo.db.Transaction(func(tx *gorm.DB) error {
			var prev model.Authorization
			err := tx.Unscoped().Where(&model.Authorization{ID: auth.ID}).First(&prev).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				created = true
				return tx.Create(auth).Error
			}
			if err != nil {
				return err
			}
			// 上書き保存では論理削除も解除する
			return tx.Unscoped().
				Model(&model.Authorization{ID: auth.ID}).
				Updates(map[string]interface{}{
					"application_id":    auth.ApplicationID,
					"subject":           auth.Subject,
					"scopes":            auth.Scopes,
					"status":            auth.Status,
					"type":              auth.Type,
					"properties":        auth.Properties,
					"concurrency_stamp": auth.ConcurrencyStamp,
					"deleted_at":        nil,
				}).Error
		})
	}
	err := save()
	if gormutil.IsMySQLDuplicatedRecordErr(err) {
		// 同じIDの同時保存に先を越された場合は更新として再試行する
		err = save()
	}
	if err != nil {
		if gormutil.IsMySQLForeignKeyConstraintFailsError(err) {
			return repository.ErrReferenceNotFound
		}
		return err
	}
	if created {
		repo.hub.Publish(hub.Message{
			Name: event.AuthorizationCreated,
			Fields: hub.Fields{
				"authorization_id": auth.ID,
				"subject":          auth.Subject,
			},
		})
	}
	return nil
}

// GetAuthorization implements AuthorizationRepository interface.
func (repo *Repository) GetAuthorization(id string) (*model.Authorization, error) {
	if len(id) == 0 {
		return nil, repository.ErrNotFound
	}
	auth := &model.Authorization{}
	if err := repo.db.Take(auth, &model.Authorization{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return auth, nil
}

// GetAuthorizationsBySubject implements AuthorizationRepository interface.
func (repo *Repository) GetAuthorizationsBySubject(subject string) ([]*model.Authorization, error) {
	auths := make([]*model.Authorization, 0)
	if len(subject) == 0 {
		return auths, nil
	}
	return auths, repo.db.Where(&model.Authorization{Subject: subject}).Find(&auths).Error
}

// RevokeAuthorization implements AuthorizationRepository interface.
func (repo *Repository) RevokeAuthorization(id string) error {
	if len(id) == 0 {
		return nil
	}
	var revoked bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var auth model.Authorization
		err := tx.Where(&model.Authorization{ID: id}).First(&auth).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		changes := map[string]interface{}{
			"status":            model.AuthorizationStatusRevoked,
			"concurrency_stamp": uuid.Must(uuid.NewV4()).String(),
		}
		if err := tx.Model(&auth).Updates(changes).Error; err != nil {
			return err
		}
		if err := tx.Delete(&auth).Error; err != nil {
			return err
		}
		revoked = true
		return nil
	})
	if err != nil {
		return err
	}
	if revoked {
		repo.hub.Publish(hub.Message{
			Name: event.AuthorizationRevoked,
			Fields: hub.Fields{
				"authorization_id": id,
			},
		})
	}
	return nil
}
