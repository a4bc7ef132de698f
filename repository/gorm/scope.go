package gorm

import (
	"github.com/gofrs/uuid"

	"github.com/traPtitech/oidp/model"
	"github.com/traPtitech/oidp/repository"
	"github.com/traPtitech/oidp/utils/gormutil"
)

// CreateScope implements ScopeRepository interface.
func (repo *Repository) CreateScope(scope *model.Scope) error {
	if scope == nil {
		return repository.ErrNilID
	}
	if len(scope.Name) == 0 {
		return repository.ArgError("scope.Name", "Name is required")
	}
	if len(scope.ID) == 0 {
		scope.ID = uuid.Must(uuid.NewV7()).String()
	}
	scope.ConcurrencyStamp = uuid.Must(uuid.NewV4()).String()
	if err := repo.db.Create(scope).Error; err != nil {
		if gormutil.IsMySQLDuplicatedRecordErr(err) {
			return repository.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetScopeByName implements ScopeRepository interface.
func (repo *Repository) GetScopeByName(name string) (*model.Scope, error) {
	if len(name) == 0 {
		return nil, repository.ErrNotFound
	}
	scope := &model.Scope{}
	if err := repo.db.Take(scope, &model.Scope{Name: name}).Error; err != nil {
		return nil, convertError(err)
	}
	return scope, nil
}

// GetScopes implements ScopeRepository interface.
func (repo *Repository) GetScopes() ([]*model.Scope, error) {
	scopes := make([]*model.Scope, 0)
	return scopes, repo.db.Order("name").Find(&scopes).Error
}
