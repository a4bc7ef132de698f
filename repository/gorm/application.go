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

// CreateApplication implements ApplicationRepository interface.
func (repo *Repository) CreateApplication(app *model.Application) error {
	if app == nil {
		return repository.ErrNilID
	}
	if len(app.ClientID) == 0 {
		return repository.ArgError("app.ClientID", "ClientID is required")
	}
	if err := app.Validate(); err != nil {
		return repository.ArgError("app", err.Error())
	}
	if len(app.ID) == 0 {
		app.ID = uuid.Must(uuid.NewV7()).String()
	}
	app.ConcurrencyStamp = uuid.Must(uuid.NewV4()).String()
	if err := repo.db.Create(app).Error; err != nil {
		if gormutil.IsMySQLDuplicatedRecordErr(err) {
			return repository.ErrAlreadyExists
		}
		return err
	}
	repo.hub.Publish(hub.Message{
		Name: event.ApplicationCreated,
		Fields: hub.Fields{
			"app_id":    app.ID,
			"client_id": app.ClientID,
		},
	})
	return nil
}

// SaveApplication implements ApplicationRepository interface.
func (repo *Repository) SaveApplication(app *model.Application) error {
	if app == nil || len(app.ClientID) == 0 {
		return repository.ErrNilID
	}
	if err := app.Validate(); err != nil {
		return repository.ArgError("app", err.Error())
	}
	app.ConcurrencyStamp = uuid.Must(uuid.NewV4()).String()

	var created bool
	save := func() error {
		created = false
		return repo.db.Transaction(func(tx *gorm.DB) error {
			var prev model.Application
			err := tx.Unscoped().Where(&model.Application{ClientID: app.ClientID}).First(&prev).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if len(app.ID) == 0 {
					app.ID = uuid.Must(uuid.NewV7()).String()
				}
				created = true
				return tx.Create(app).Error
			}
			if err != nil {
				return err
			}
			app.ID = prev.ID
			// 上書き保存では論理削除も解除する
			return tx.Unscoped().
				Model(&model.Application{ID: prev.ID}).
				Updates(map[string]interface{}{
					"client_secret":             app.ClientSecret,
					"client_type":               app.ClientType,
					"display_name":              app.DisplayName,
					"consent_type":              app.ConsentType,
					"permissions":               app.Permissions,
					"redirect_uris":             app.RedirectURIs,
					"post_logout_redirect_uris": app.PostLogoutRedirectURIs,
					"properties":                app.Properties,
					"concurrency_stamp":         app.ConcurrencyStamp,
					"deleted_at":                nil,
				}).Error
		})
	}
	err := save()
	if gormutil.IsMySQLDuplicatedRecordErr(err) {
		// 同じclient_idの同時保存に先を越された場合は更新として再試行する
		err = save()
	}
	if err != nil {
		return err
	}
	if created {
		repo.hub.Publish(hub.Message{
			Name: event.ApplicationCreated,
			Fields: hub.Fields{
				"app_id":    app.ID,
				"client_id": app.ClientID,
			},
		})
	} else {
		repo.hub.Publish(hub.Message{
			Name: event.ApplicationUpdated,
			Fields: hub.Fields{
				"client_id": app.ClientID,
			},
		})
	}
	return nil
}

// GetApplicationByID implements ApplicationRepository interface.
func (repo *Repository) GetApplicationByID(id string) (*model.Application, error) {
	if len(id) == 0 {
		return nil, repository.ErrNotFound
	}
	app := &model.Application{}
	if err := repo.db.Take(app, &model.Application{ID: id}).Error; err != nil {
		return nil, convertError(err)
	}
	return app, nil
}

// GetApplicationByClientID implements ApplicationRepository interface.
func (repo *Repository) GetApplicationByClientID(clientID string) (*model.Application, error) {
	if len(clientID) == 0 {
		return nil, repository.ErrNotFound
	}
	app := &model.Application{}
	if err := repo.db.Take(app, &model.Application{ClientID: clientID}).Error; err != nil {
		return nil, convertError(err)
	}
	return app, nil
}

// GetApplications implements ApplicationRepository interface.
func (repo *Repository) GetApplications() ([]*model.Application, error) {
	apps := make([]*model.Application, 0)
	return apps, repo.db.Find(&apps).Error
}

// UpdateApplication implements ApplicationRepository interface.
func (repo *Repository) UpdateApplication(clientID string, args repository.UpdateApplicationArgs) error {
	if len(clientID) == 0 {
		return repository.ErrNilID
	}
	var updated bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := tx.Where(&model.Application{ClientID: clientID}).First(&app).Error; err != nil {
			return convertError(err)
		}

		changes := map[string]interface{}{}
		if args.DisplayName.Valid {
			changes["display_name"] = args.DisplayName.V
		}
		if args.ClientSecret.Valid {
			changes["client_secret"] = args.ClientSecret.V
		}
		if args.ClientType.Valid {
			if args.ClientType.V != model.ClientTypePublic && args.ClientType.V != model.ClientTypeConfidential {
				return repository.ArgError("args.ClientType", "invalid client type")
			}
			changes["client_type"] = args.ClientType.V
		}
		if args.ConsentType.Valid {
			changes["consent_type"] = args.ConsentType.V
		}
		if args.Permissions != nil {
			changes["permissions"] = args.Permissions
		}
		if args.RedirectURIs != nil {
			changes["redirect_uris"] = args.RedirectURIs
		}
		if args.PostLogoutRedirectURIs != nil {
			changes["post_logout_redirect_uris"] = args.PostLogoutRedirectURIs
		}

		if len(changes) > 0 {
			changes["concurrency_stamp"] = uuid.Must(uuid.NewV4()).String()
			if err := tx.Model(&app).Updates(changes).Error; err != nil {
				return err
			}
			updated = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if updated {
		repo.hub.Publish(hub.Message{
			Name: event.ApplicationUpdated,
			Fields: hub.Fields{
				"client_id": clientID,
			},
		})
	}
	return nil
}

// DeleteApplication implements ApplicationRepository interface.
func (repo *Repository) DeleteApplication(clientID string) error {
	if len(clientID) == 0 {
		return repository.ErrNilID
	}
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := tx.Where(&model.Application{ClientID: clientID}).First(&app).Error; err != nil {
			return convertError(err)
		}
		return tx.Delete(&app).Error
	})
	if err != nil {
		return err
	}
	repo.hub.Publish(hub.Message{
		Name: event.ApplicationDeleted,
		Fields: hub.Fields{
			"client_id": clientID,
		},
	})
	return nil
}
