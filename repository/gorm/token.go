package gorm

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"github.com/leandro-lugaresi/hub"
	"gorm.io/gorm"

	"github.com/traPtitech/oidp/event"
	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/gormutil"
)

// SaveToken implements TokenRepository interface.
func (repo *Repository) SaveToken(token *model.Token) error {
	if token == nil || len(token.ReferenceID) == 0 {
		return repository.ErrNilID
	}
	if len(token.Type) == 0 {
		return repository.ArgError("token.Type", "Type is required")
	}
	token.ConcurrencyStamp = uuid.Must(uuid.NewV4()).String()
	if len(token.Status) == 0 {
		token.Status = model.TokenStatusValid
	}

	var created bool
	save := func() error {
		created = false
		return repo.db.Transaction(func(tx *gorm.DB) error {
			var prev model.Token
			err := tx.Unscoped().Where(&model.Token{ReferenceID: token.ReferenceID}).First(&prev).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if token.ID == uuid.Nil {
					token.ID = uuid.Must(uuid.NewV7())
				}
				created = true
				return tx.Create(token).Error
			}
			if err != nil {
				return err
			}
			token.ID = prev.ID
			// 上書き保存では論理削除も解除する
			return tx.Unscoped().
				Model(&model.Token{ID: prev.ID}).
				Updates(map[string]interface{}{
					"uid":               token.UID,
					"user_code":         token.UserCode,
					"application_id":    token.ApplicationID,
					"authorization_id":  token.AuthorizationID,
					"subject":           token.Subject,
					"type":              token.Type,
					"payload":           token.Payload,
					"expires_at":        token.ExpiresAt,
					"redeemed_at":       token.RedeemedAt,
					"status":            token.Status,
					"concurrency_stamp": token.ConcurrencyStamp,
					"deleted_at":        nil,
				}).Error
		})
	}
	err := save()
	if gormutil.IsMySQLDuplicatedRecordErr(err) {
		// 同じreference_idの同時保存に先を越された場合は更新として再試行する
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
			Name: event.TokenCreated,
			Fields: hub.Fields{
				"token_id":     token.ID,
				"reference_id": token.ReferenceID,
				"token_type":   token.Type,
			},
		})
	}
	return nil
}

// GetTokenByReferenceID implements TokenRepository interface.
func (repo *Repository) GetTokenByReferenceID(referenceID string) (*model.Token, error) {
	if len(referenceID) == 0 {
		return nil, repository.ErrNotFound
	}
	token := &model.Token{}
	if err := repo.db.Take(token, &model.Token{ReferenceID: referenceID}).Error; err != nil {
		return nil, convertError(err)
	}
	return token, nil
}

// GetTokenByUID implements TokenRepository interface.
func (repo *Repository) GetTokenByUID(tokenType, uid string) (*model.Token, error) {
	if len(uid) == 0 {
		return nil, repository.ErrNotFound
	}
	token := &model.Token{}
	if err := repo.db.
		Where("type = ? AND uid = ?", tokenType, uid).
		Take(token).Error; err != nil {
		return nil, convertError(err)
	}
	return token, nil
}

// GetTokenByUserCode implements TokenRepository interface.
func (repo *Repository) GetTokenByUserCode(tokenType, userCode string) (*model.Token, error) {
	if len(userCode) == 0 {
		return nil, repository.ErrNotFound
	}
	token := &model.Token{}
	if err := repo.db.
		Where("type = ? AND user_code = ?", tokenType, userCode).
		Take(token).Error; err != nil {
		return nil, convertError(err)
	}
	return token, nil
}

// SetTokenStatus implements TokenRepository interface.
func (repo *Repository) SetTokenStatus(referenceID string, status string) error {
	if len(referenceID) == 0 {
		return repository.ErrNilID
	}
	result := repo.db.
		Model(&model.Token{}).
		Where("reference_id = ?", referenceID).
		Updates(map[string]interface{}{
			"status":            status,
			"concurrency_stamp": uuid.Must(uuid.NewV4()).String(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ConsumeToken implements TokenRepository interface.
func (repo *Repository) ConsumeToken(referenceID string, redeemedAt time.Time) error {
	if len(referenceID) == 0 {
		return repository.ErrNilID
	}
	var consumed bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var token model.Token
		if err := tx.Where(&model.Token{ReferenceID: referenceID}).First(&token).Error; err != nil {
			return convertError(err)
		}
		consumed = token.Status != model.TokenStatusConsumed

		// 再消費は呼び出し側からは冪等だが、最新の消費時刻は記録し直す
		payload := token.Payload.Clone()
		payload.SetConsumed(redeemedAt.Unix())
		return tx.Model(&token).Updates(map[string]interface{}{
			"payload":           payload,
			"redeemed_at":       redeemedAt,
			"status":            model.TokenStatusConsumed,
			"concurrency_stamp": uuid.Must(uuid.NewV4()).String(),
		}).Error
	})
	if err != nil {
		return err
	}
	if consumed {
		repo.hub.Publish(hub.Message{
			Name: event.TokenConsumed,
			Fields: hub.Fields{
				"reference_id": referenceID,
			},
		})
	}
	return nil
}

// RevokeTokensByAuthorizationID implements TokenRepository interface.
func (repo *Repository) RevokeTokensByAuthorizationID(authorizationID string) (int64, error) {
	if len(authorizationID) == 0 {
		return 0, nil
	}
	result := repo.db.
		Model(&model.Token{}).
		Where("authorization_id = ? AND status = ?", authorizationID, model.TokenStatusValid).
		Updates(map[string]interface{}{
			"status":            model.TokenStatusRevoked,
			"concurrency_stamp": uuid.Must(uuid.NewV4()).String(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		repo.hub.Publish(hub.Message{
			Name: event.TokensRevokedByGrant,
			Fields: hub.Fields{
				"authorization_id": authorizationID,
				"count":            result.RowsAffected,
			},
		})
	}
	return result.RowsAffected, nil
}

// DeleteTokenByReferenceID implements TokenRepository interface.
func (repo *Repository) DeleteTokenByReferenceID(referenceID string) error {
	if len(referenceID) == 0 {
		return nil
	}
	var deleted bool
	err := repo.db.Transaction(func(tx *gorm.DB) error {
		var token model.Token
		err := tx.Where(&model.Token{ReferenceID: referenceID}).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := tx.Model(&token).Updates(map[string]interface{}{
			"status":            model.TokenStatusRevoked,
			"concurrency_stamp": uuid.Must(uuid.NewV4()).String(),
		}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&token).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if err != nil {
		return err
	}
	if deleted {
		repo.hub.Publish(hub.Message{
			Name: event.TokenRevoked,
			Fields: hub.Fields{
				"reference_id": referenceID,
			},
		})
	}
	return nil
}

// DeleteExpiredTokens implements TokenRepository interface.
func (repo *Repository) DeleteExpiredTokens(before time.Time) (int64, error) {
	result := repo.db.
		Unscoped().
		Where("expires_at IS NOT NULL AND expires_at < ?", before).
		Delete(&model.Token{})
	return result.RowsAffected, result.Error
}
